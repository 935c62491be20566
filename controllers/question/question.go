package questionController

import (
	"log"

	"github.com/Thedarik/Quations/database"
	"github.com/Thedarik/Quations/middleware"
	"github.com/Thedarik/Quations/models"
	"github.com/Thedarik/Quations/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionCreate is the validated create-question payload. The question
// arrives as multipart form data: text, four answers, the 1-based index of
// the correct answer and an optional image (either an uploaded file or a
// remote URL to fetch).
type QuestionCreate struct {
	GroupTitle    string `form:"group_title" validate:"required"`
	Text          string `form:"text" validate:"required"`
	Answer1       string `form:"answer1" validate:"required"`
	Answer2       string `form:"answer2" validate:"required"`
	Answer3       string `form:"answer3" validate:"required"`
	Answer4       string `form:"answer4" validate:"required"`
	CorrectAnswer int    `form:"correct_answer" validate:"required,min=1,max=4"`
	ImageURL      string `form:"image_url"`
}

// CreateQuestion appends a question to the named group. For an account with
// no groups yet the group is created on the fly from the submitted title,
// so first-time users can start without an explicit create-group call.
func CreateQuestion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*QuestionCreate)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Store the image outside the transaction; a rejected image fails the
	// whole request before anything is written.
	imagePath := ""
	if file, err := c.FormFile("image"); err == nil && file != nil && file.Size > 0 {
		path, err := utils.SaveUploadedImage(file)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		imagePath = path
	} else if reqData.ImageURL != "" {
		path, err := utils.FetchRemoteImage(reqData.ImageURL)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		}
		imagePath = path
	}

	answers := []models.AnswerOption{
		{Text: reqData.Answer1, IsCorrect: reqData.CorrectAnswer == 1, OrderIndex: 0},
		{Text: reqData.Answer2, IsCorrect: reqData.CorrectAnswer == 2, OrderIndex: 1},
		{Text: reqData.Answer3, IsCorrect: reqData.CorrectAnswer == 3, OrderIndex: 2},
		{Text: reqData.Answer4, IsCorrect: reqData.CorrectAnswer == 4, OrderIndex: 3},
	}

	db := database.Database.Db

	var questionNo uint
	err := db.Transaction(func(tx *gorm.DB) error {
		// Locked read: the group's counter is read-modify-write below
		var group models.QuestionGroup
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND title = ?", userID, reqData.GroupTitle).First(&group).Error
		if err != nil {
			var groupCount int64
			tx.Model(&models.QuestionGroup{}).Where("user_id = ?", userID).Count(&groupCount)
			if groupCount > 0 {
				// Groups exist, just not this one
				return gorm.ErrRecordNotFound
			}

			// First question ever: create its group from the submitted title.
			// Same account-row lock as explicit group creation.
			var user models.User
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
				return err
			}
			user.NextGroupSeq++
			if err := tx.Save(&user).Error; err != nil {
				return err
			}
			group = models.QuestionGroup{
				UserID:  userID,
				GroupNo: user.NextGroupSeq,
				Title:   reqData.GroupTitle,
			}
			if err := tx.Create(&group).Error; err != nil {
				return err
			}
		}

		group.NextQuestionSeq++
		if err := tx.Save(&group).Error; err != nil {
			return err
		}

		question := models.Question{
			GroupID:    group.ID,
			QuestionNo: group.NextQuestionSeq,
			Text:       reqData.Text,
			ImagePath:  imagePath,
			Answers:    answers,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}

		questionNo = question.QuestionNo
		return nil
	})

	if err == gorm.ErrRecordNotFound {
		utils.RemoveUploadedFile(imagePath)
		return middleware.JsonResponse(c, fiber.StatusNotFound, false,
			"Group '"+reqData.GroupTitle+"' not found. Create the group first!", nil)
	}
	if err != nil {
		utils.RemoveUploadedFile(imagePath)
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true,
		"Question added to group '"+reqData.GroupTitle+"'.", fiber.Map{
			"question_id": questionNo,
			"image":       utils.GetFileURL(imagePath),
		})
}

// AllQuestions returns the caller's full group/question tree, answers and
// correctness flags included. Authors use this view; exam delivery goes
// through the test endpoint instead.
func AllQuestions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	groups, err := loadGroups(userID)
	if err != nil {
		log.Printf("Error loading questions: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All questions.", fiber.Map{
		"groups": groups,
	})
}

// loadGroups reads the account's whole tree in stored order: groups by
// creation, questions by their per-group number, answers by authoring order.
func loadGroups(userID uint) ([]models.QuestionGroup, error) {
	var groups []models.QuestionGroup
	err := database.Database.Db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.question_no ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_options.order_index ASC")
		}).
		Where("user_id = ?", userID).
		Order("group_no ASC").
		Find(&groups).Error
	return groups, err
}
