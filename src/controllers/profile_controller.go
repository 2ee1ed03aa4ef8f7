package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/theleywin/devconnector/src/lib"
	"github.com/theleywin/devconnector/src/models"
)

type ProfileController struct {
	profiles ProfileService
	github   GithubService
}

func NewProfileController(profiles ProfileService, github GithubService) *ProfileController {
	return &ProfileController{
		profiles: profiles,
		github:   github,
	}
}

// GetMyProfile returns the authenticated user's profile
func (pc *ProfileController) GetMyProfile(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	profile, err := pc.profiles.Mine(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile creates or updates the authenticated user's profile
func (pc *ProfileController) UpsertProfile(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.ProfileRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	profile, err := pc.profiles.Upsert(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (pc *ProfileController) GetProfiles(c *fiber.Ctx) error {
	profiles, err := pc.profiles.FetchAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

func (pc *ProfileController) GetProfileByUser(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "user_id", models.NewBadRequestError("Profile not found."))
	if err != nil {
		return respondError(c, err)
	}

	profile, err := pc.profiles.FetchByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount removes the user's posts, profile and account
func (pc *ProfileController) DeleteAccount(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := pc.profiles.DeleteCascade(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(lib.MessageResponse("User removed."))
}

func (pc *ProfileController) AddExperience(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.ExperienceRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	profile, err := pc.profiles.AddExperience(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (pc *ProfileController) DeleteExperience(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	profile, err := pc.profiles.RemoveExperience(c.UserContext(), userID, c.Params("exp_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (pc *ProfileController) AddEducation(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.EducationRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, err)
	}

	profile, err := pc.profiles.AddEducation(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

func (pc *ProfileController) DeleteEducation(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	profile, err := pc.profiles.RemoveEducation(c.UserContext(), userID, c.Params("edu_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetGithubRepos proxies the user's latest GitHub repositories
func (pc *ProfileController) GetGithubRepos(c *fiber.Ctx) error {
	repos, err := pc.github.Repos(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(repos)
}
