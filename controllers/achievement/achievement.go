package achievement

import (
	"errors"
	"strings"

	"gamify/database"
	"gamify/helpers"
	"gamify/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AchievementRequest struct {
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	Trigger         models.TriggerConfig     `json:"trigger"`
	Vertical        models.Vertical          `json:"vertical"`
	Filters         *models.FilterSet        `json:"filters"`
	RewardPoints    decimal.Decimal          `json:"reward_points"`
	BonusTemplateID string                   `json:"bonus_template_id"`
	Status          models.AchievementStatus `json:"status"`
	Priority        int                      `json:"priority"`
	Icon            string                   `json:"icon"`
}

func validTrigger(t models.TriggerType) bool {
	switch t {
	case models.TriggerLoginStreak, models.TriggerGameTurnover, models.TriggerGameTransaction,
		models.TriggerUserVerification, models.TriggerDeposit, models.TriggerWinningBetsCount,
		models.TriggerTotalWinAmount, models.TriggerMaxSingleWin, models.TriggerConsecutiveWins,
		models.TriggerSpecificGameEngagement, models.TriggerMarketSpecificBets,
		models.TriggerTotalDepositAmount, models.TriggerWithdrawal, models.TriggerReferralCount,
		models.TriggerAccountLongevity, models.TriggerProfileCompletion, models.TriggerNetResult:
		return true
	}
	return false
}

func validVertical(v models.Vertical) bool {
	switch v {
	case models.VerticalCasino, models.VerticalSportsbook, models.VerticalLiveCasino, models.VerticalCrossVertical:
		return true
	}
	return false
}

func ListAchievements(c *fiber.Ctx) error {
	var achievements []models.Achievement
	if err := database.DB.Order("priority DESC, created_at ASC").Find(&achievements).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_FETCH_ACHIEVEMENTS")
	}
	return helpers.JSONSuccess(c, "ACHIEVEMENTS", achievements)
}

func GetAchievement(c *fiber.Ctx) error {
	id := c.Params("achievementId")

	var a models.Achievement
	if err := database.DB.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONNotFound(c, "ACHIEVEMENT_NOT_FOUND")
		}
		return helpers.JSONError(c, "FAILED_TO_FETCH_ACHIEVEMENT")
	}
	return helpers.JSONSuccess(c, "ACHIEVEMENT", a)
}

func CreateAchievement(c *fiber.Ctx) error {
	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if strings.TrimSpace(req.Title) == "" {
		return helpers.JSONError(c, "TITLE_REQUIRED")
	}
	if !validTrigger(req.Trigger.Type) {
		return helpers.JSONError(c, "INVALID_TRIGGER_TYPE")
	}
	if !validVertical(req.Vertical) {
		return helpers.JSONError(c, "INVALID_VERTICAL")
	}
	if req.Status == "" {
		req.Status = models.AchievementActive
	}
	if req.Status != models.AchievementActive && req.Status != models.AchievementInactive {
		return helpers.JSONError(c, "INVALID_STATUS")
	}

	a := models.Achievement{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		Trigger:         datatypes.NewJSONType(req.Trigger),
		Vertical:        req.Vertical,
		RewardPoints:    req.RewardPoints,
		BonusTemplateID: req.BonusTemplateID,
		Status:          req.Status,
		Priority:        req.Priority,
		Icon:            req.Icon,
	}
	if req.Filters != nil {
		a.Filters = datatypes.NewJSONType(*req.Filters)
	}

	if err := database.DB.Create(&a).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_ACHIEVEMENT")
	}
	return helpers.JSONSuccess(c, "ACHIEVEMENT_CREATED", a)
}

func UpdateAchievement(c *fiber.Ctx) error {
	id := c.Params("achievementId")

	var a models.Achievement
	if err := database.DB.Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONNotFound(c, "ACHIEVEMENT_NOT_FOUND")
		}
		return helpers.JSONError(c, "FAILED_TO_FETCH_ACHIEVEMENT")
	}

	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	if req.Title != "" {
		a.Title = req.Title
	}
	if req.Description != "" {
		a.Description = req.Description
	}
	if req.Trigger.Type != "" {
		if !validTrigger(req.Trigger.Type) {
			return helpers.JSONError(c, "INVALID_TRIGGER_TYPE")
		}
		a.Trigger = datatypes.NewJSONType(req.Trigger)
	}
	if req.Vertical != "" {
		if !validVertical(req.Vertical) {
			return helpers.JSONError(c, "INVALID_VERTICAL")
		}
		a.Vertical = req.Vertical
	}
	if req.Filters != nil {
		a.Filters = datatypes.NewJSONType(*req.Filters)
	}
	if req.RewardPoints.IsPositive() {
		a.RewardPoints = req.RewardPoints
	}
	if req.BonusTemplateID != "" {
		a.BonusTemplateID = req.BonusTemplateID
	}
	if req.Status != "" {
		if req.Status != models.AchievementActive && req.Status != models.AchievementInactive {
			return helpers.JSONError(c, "INVALID_STATUS")
		}
		a.Status = req.Status
	}
	if req.Priority != 0 {
		a.Priority = req.Priority
	}
	if req.Icon != "" {
		a.Icon = req.Icon
	}

	if err := database.DB.Save(&a).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_ACHIEVEMENT")
	}
	return helpers.JSONSuccess(c, "ACHIEVEMENT_UPDATED", a)
}

func DeleteAchievement(c *fiber.Ctx) error {
	id := c.Params("achievementId")

	result := database.DB.Where("id = ?", id).Delete(&models.Achievement{})
	if result.Error != nil {
		return helpers.JSONError(c, "FAILED_TO_DELETE_ACHIEVEMENT")
	}
	if result.RowsAffected == 0 {
		return helpers.JSONNotFound(c, "ACHIEVEMENT_NOT_FOUND")
	}
	return helpers.JSONSuccess(c, "ACHIEVEMENT_DELETED", nil)
}
