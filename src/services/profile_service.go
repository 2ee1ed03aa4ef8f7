package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/theleywin/devconnector/src/models"
	"github.com/theleywin/devconnector/src/repository"
	"github.com/theleywin/devconnector/src/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	msgNoProfile       = "There is no profile for this user."
	msgProfileNotFound = "Profile not found."
)

// ErrEntryNotFound is returned when an experience or education id does not
// match any entry of the profile. It surfaces as a generic server error.
var ErrEntryNotFound = errors.New("profile entry not found")

type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	posts    repository.PostRepository
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, posts repository.PostRepository) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		posts:    posts,
	}
}

// Upsert creates the user's profile or applies the non-empty request fields
// to the existing one.
func (s *ProfileService) Upsert(ctx context.Context, userID primitive.ObjectID, req models.ProfileRequest) (*models.Profile, error) {
	profile, err := s.profiles.Upsert(ctx, userID, profileFields(req))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profile, nil
}

// profileFields keeps only the keys that carry a value. Social links are
// addressed one by one so an omitted link never erases a stored one.
func profileFields(req models.ProfileRequest) models.ProfileFields {
	fields := models.ProfileFields{}

	set := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}
	set("company", req.Company)
	set("website", req.Website)
	set("location", req.Location)
	set("bio", req.Bio)
	set("status", req.Status)
	set("githubusername", req.GithubUsername)
	set("social.youtube", req.Youtube)
	set("social.twitter", req.Twitter)
	set("social.facebook", req.Facebook)
	set("social.linkedin", req.Linkedin)
	set("social.instagram", req.Instagram)

	if req.Skills != "" {
		fields["skills"] = SplitSkills(req.Skills)
	}
	return fields
}

// SplitSkills splits a comma separated list and trims each element. Empty
// segments are kept.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// Mine returns the caller's own profile
func (s *ProfileService) Mine(ctx context.Context, userID primitive.ObjectID) (*models.ProfileDto, error) {
	return s.fetch(ctx, userID, msgNoProfile)
}

// FetchByUser returns the profile of any user by id
func (s *ProfileService) FetchByUser(ctx context.Context, userID primitive.ObjectID) (*models.ProfileDto, error) {
	return s.fetch(ctx, userID, msgProfileNotFound)
}

func (s *ProfileService) fetch(ctx context.Context, userID primitive.ObjectID, notFound string) (*models.ProfileDto, error) {
	profile, err := s.profiles.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewBadRequestError(notFound)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	dtos, err := s.populate(ctx, []models.Profile{*profile})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// FetchAll returns every profile in store order
func (s *ProfileService) FetchAll(ctx context.Context) ([]models.ProfileDto, error) {
	profiles, err := s.profiles.FindAll(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.populate(ctx, profiles)
}

// populate joins {_id, name, avatar} of the owning user onto each profile.
// A profile whose user is gone keeps only the user id.
func (s *ProfileService) populate(ctx context.Context, profiles []models.Profile) ([]models.ProfileDto, error) {
	ids := make([]primitive.ObjectID, 0, len(profiles))
	seen := make(map[primitive.ObjectID]bool, len(profiles))
	for _, p := range profiles {
		if !seen[p.User] {
			seen[p.User] = true
			ids = append(ids, p.User)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	byID := make(map[primitive.ObjectID]models.UserDto, len(users))
	for _, u := range users {
		byID[u.Id] = u.Dto()
	}

	dtos := make([]models.ProfileDto, 0, len(profiles))
	for _, p := range profiles {
		user, ok := byID[p.User]
		if !ok {
			user = models.UserDto{ID: p.User}
		}
		dtos = append(dtos, models.NewProfileDto(p, user))
	}
	return dtos, nil
}

// DeleteCascade removes the user's posts, then the profile, then the user.
// A failure part way leaves the earlier deletions in place.
func (s *ProfileService) DeleteCascade(ctx context.Context, userID primitive.ObjectID) error {
	removed, err := s.posts.DeleteByUser(ctx, userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := s.profiles.DeleteByUser(ctx, userID); err != nil {
		return models.NewInternalError(err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return models.NewInternalError(err)
	}

	slog.InfoContext(ctx, "User removed",
		slog.String("user_id", userID.Hex()),
		slog.Int64("posts_removed", removed),
	)
	return nil
}

// AddExperience puts a new entry at the front of the experience list
func (s *ProfileService) AddExperience(ctx context.Context, userID primitive.ObjectID, req models.ExperienceRequest) (*models.Profile, error) {
	profile, err := s.owned(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	entry := models.Experience{
		Id:          primitive.NewObjectID(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}

	experience := append([]models.Experience{entry}, profile.Experience...)
	return s.saveExperience(ctx, userID, experience)
}

// AddEducation puts a new entry at the front of the education list
func (s *ProfileService) AddEducation(ctx context.Context, userID primitive.ObjectID, req models.EducationRequest) (*models.Profile, error) {
	profile, err := s.owned(ctx, userID)
	if err != nil {
		return nil, err
	}

	from, to, err := parseRange(req.From, req.To)
	if err != nil {
		return nil, err
	}
	entry := models.Education{
		Id:           primitive.NewObjectID(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}

	education := append([]models.Education{entry}, profile.Education...)
	return s.saveEducation(ctx, userID, education)
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID primitive.ObjectID, entryID string) (*models.Profile, error) {
	profile, err := s.owned(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.Experience, 0, len(profile.Experience))
	for _, exp := range profile.Experience {
		if exp.Id.Hex() != entryID {
			kept = append(kept, exp)
		}
	}
	if len(kept) == len(profile.Experience) {
		return nil, models.NewInternalError(ErrEntryNotFound)
	}
	return s.saveExperience(ctx, userID, kept)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID primitive.ObjectID, entryID string) (*models.Profile, error) {
	profile, err := s.owned(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.Education, 0, len(profile.Education))
	for _, edu := range profile.Education {
		if edu.Id.Hex() != entryID {
			kept = append(kept, edu)
		}
	}
	if len(kept) == len(profile.Education) {
		return nil, models.NewInternalError(ErrEntryNotFound)
	}
	return s.saveEducation(ctx, userID, kept)
}

func (s *ProfileService) owned(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	profile, err := s.profiles.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewBadRequestError(msgNoProfile)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profile, nil
}

func (s *ProfileService) saveExperience(ctx context.Context, userID primitive.ObjectID, experience []models.Experience) (*models.Profile, error) {
	profile, err := s.profiles.SetExperience(ctx, userID, experience)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewBadRequestError(msgNoProfile)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profile, nil
}

func (s *ProfileService) saveEducation(ctx context.Context, userID primitive.ObjectID, education []models.Education) (*models.Profile, error) {
	profile, err := s.profiles.SetEducation(ctx, userID, education)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, models.NewBadRequestError(msgNoProfile)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profile, nil
}

func parseRange(fromValue, toValue string) (time.Time, *time.Time, error) {
	from, err := validation.ParseDate(fromValue)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError(models.FieldError{
			Msg:      "Start date is required.",
			Param:    "from",
			Location: "body",
		})
	}
	if toValue == "" {
		return from, nil, nil
	}

	to, err := validation.ParseDate(toValue)
	if err != nil {
		return time.Time{}, nil, models.NewValidationError(models.FieldError{
			Msg:      "End date is not a valid date.",
			Param:    "to",
			Location: "body",
		})
	}
	return from, &to, nil
}
