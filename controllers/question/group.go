package questionController

import (
	"log"

	"github.com/Thedarik/Quations/database"
	"github.com/Thedarik/Quations/middleware"
	"github.com/Thedarik/Quations/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroupCreate is the validated create-group payload.
type GroupCreate struct {
	Title string `json:"title" form:"title" validate:"required,min=1,max=128"`
}

// CreateGroup appends a new empty question group to the caller's tree.
// Titles are unique per account, case-sensitive.
func CreateGroup(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedGroup").(*GroupCreate)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var groupNo uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.QuestionGroup
		if err := tx.Where("user_id = ? AND title = ?", userID, reqData.Title).First(&existing).Error; err == nil {
			return gorm.ErrDuplicatedKey
		}

		// Lock the account row so concurrent creates cannot read the same
		// counter value (postgres; sqlite has a single writer anyway)
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return err
		}

		user.NextGroupSeq++
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		group := models.QuestionGroup{
			UserID:  userID,
			GroupNo: user.NextGroupSeq,
			Title:   reqData.Title,
		}
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		groupNo = group.GroupNo
		return nil
	})

	if err == gorm.ErrDuplicatedKey {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Group '"+reqData.Title+"' already exists!", nil)
	}
	if err != nil {
		log.Printf("Error creating group: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create group!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Group '"+reqData.Title+"' created successfully.", fiber.Map{
		"group_id": groupNo,
	})
}
