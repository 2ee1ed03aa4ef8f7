// Package seed fills a development database with fake developers, profiles
// and posts. It is meant for local demos and manual testing only.
package seed

import (
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/theleywin/devconnector/src/lib"
	"github.com/theleywin/devconnector/src/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPassword is the clear-text password of every seeded user
const DefaultPassword = "password123"

var (
	statuses = []string{
		"Developer", "Junior Developer", "Senior Developer", "Manager",
		"Student or Learning", "Instructor or Teacher", "Intern", "Other",
	}

	skillPool = []string{
		"Go", "JavaScript", "TypeScript", "React", "Node.js", "MongoDB", "PostgreSQL",
		"Docker", "Kubernetes", "Python", "Rust", "HTML", "CSS", "GraphQL", "Redis",
		"AWS", "Linux", "Vue", "Svelte", "Terraform",
	}

	degrees = []string{"Bachelor", "Master", "Associate", "PhD", "Bootcamp Certificate"}

	studyFields = []string{
		"Computer Science", "Software Engineering", "Information Systems",
		"Mathematics", "Web Development", "Electrical Engineering",
	}
)

// Factory builds fake domain entities. It never touches the database.
type Factory struct {
	rnd          *rand.Rand
	now          func() time.Time
	passwordHash string
}

// NewFactory seeds gofakeit and the local random source with seed. A zero seed
// uses the current time. passwordHash is stored on every built user.
func NewFactory(seed int64, passwordHash string) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	return &Factory{
		rnd:          rand.New(rand.NewSource(seed)),
		now:          time.Now,
		passwordHash: passwordHash,
	}
}

func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	email := strings.ToLower(gofakeit.Email())
	user := &models.User{
		Name:      gofakeit.Name(),
		Email:     email,
		Avatar:    lib.GravatarURL(email),
		Password:  f.passwordHash,
		CreatedAt: f.pastDate(365),
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// BuildProfileFields returns the sparse update that creates a profile, in the
// same shape the profile form produces
func (f *Factory) BuildProfileFields() models.ProfileFields {
	handle := strings.ToLower(gofakeit.Username())
	fields := models.ProfileFields{
		"status":         pick(f.rnd, statuses),
		"skills":         f.skills(),
		"company":        gofakeit.Company(),
		"website":        "https://" + gofakeit.DomainName(),
		"location":       gofakeit.City() + ", " + gofakeit.StateAbr(),
		"bio":            gofakeit.Sentence(12),
		"githubusername": handle,
	}
	if f.rnd.Intn(2) == 0 {
		fields["social.twitter"] = "https://twitter.com/" + handle
	}
	if f.rnd.Intn(2) == 0 {
		fields["social.linkedin"] = "https://linkedin.com/in/" + handle
	}
	if f.rnd.Intn(4) == 0 {
		fields["social.youtube"] = "https://youtube.com/@" + handle
	}
	return fields
}

// BuildExperience returns n jobs, most recent first. Only the first one may
// still be current.
func (f *Factory) BuildExperience(n int) []models.Experience {
	entries := make([]models.Experience, 0, n)
	end := f.now()
	for i := 0; i < n; i++ {
		from := end.AddDate(0, -(6 + f.rnd.Intn(36)), 0)
		entry := models.Experience{
			Id:          primitive.NewObjectID(),
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Description: gofakeit.Sentence(10),
		}
		if i == 0 && f.rnd.Intn(2) == 0 {
			entry.Current = true
		} else {
			to := end
			entry.To = &to
		}
		entries = append(entries, entry)
		end = from.AddDate(0, -1, 0)
	}
	return entries
}

func (f *Factory) BuildEducation(n int) []models.Education {
	entries := make([]models.Education, 0, n)
	end := f.now().AddDate(-f.rnd.Intn(5), 0, 0)
	for i := 0; i < n; i++ {
		from := end.AddDate(-(2 + f.rnd.Intn(3)), 0, 0)
		to := end
		entries = append(entries, models.Education{
			Id:           primitive.NewObjectID(),
			School:       gofakeit.Company() + " University",
			Degree:       pick(f.rnd, degrees),
			FieldOfStudy: pick(f.rnd, studyFields),
			From:         from,
			To:           &to,
		})
		end = from
	}
	return entries
}

// BuildPost returns a post by author with likes and comments drawn from
// audience. The author never likes their own post.
func (f *Factory) BuildPost(author *models.User, audience []*models.User) *models.Post {
	post := &models.Post{
		User:      author.Id,
		Text:      gofakeit.Paragraph(1, 3, 8, " "),
		Name:      author.Name,
		Avatar:    author.Avatar,
		Likes:     []models.Like{},
		Comments:  []models.Comment{},
		CreatedAt: f.pastDate(90),
	}

	for _, u := range audience {
		if u.Id == author.Id {
			continue
		}
		if f.rnd.Intn(3) == 0 {
			post.Likes = append(post.Likes, models.Like{Id: primitive.NewObjectID(), User: u.Id})
		}
		if f.rnd.Intn(5) == 0 {
			// newest comment first
			post.Comments = append([]models.Comment{{
				Id:        primitive.NewObjectID(),
				User:      u.Id,
				Text:      gofakeit.Sentence(8),
				Name:      u.Name,
				Avatar:    u.Avatar,
				CreatedAt: post.CreatedAt.Add(time.Duration(len(post.Comments)+1) * time.Hour),
			}}, post.Comments...)
		}
	}
	return post
}

func (f *Factory) skills() []string {
	n := 2 + f.rnd.Intn(5)
	perm := f.rnd.Perm(len(skillPool))
	out := make([]string, 0, n)
	for _, i := range perm[:n] {
		out = append(out, skillPool[i])
	}
	return out
}

func (f *Factory) pastDate(maxDays int) time.Time {
	back := time.Duration(f.rnd.Intn(maxDays*24)) * time.Hour
	return f.now().Add(-back)
}

func pick(rnd *rand.Rand, values []string) string {
	return values[rnd.Intn(len(values))]
}
