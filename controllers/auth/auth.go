package authController

import (
	"log"
	"time"

	"github.com/Thedarik/Quations/config"
	"github.com/Thedarik/Quations/database"
	"github.com/Thedarik/Quations/middleware"
	"github.com/Thedarik/Quations/models"
	"github.com/Thedarik/Quations/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Credentials is the validated register/login payload, accepted both as form
// fields and JSON.
type Credentials struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" form:"password" validate:"required,min=6,max=128"`
}

// Register creates an account and, like a fresh login, issues its first
// session token.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCredentials").(*Credentials)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if username already exists
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Username: reqData.Username,
		Password: string(hashedPassword),
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	token, err := openSession(db, &newUser)
	if err != nil {
		log.Printf("Error creating session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	log.Printf("User %s registered", newUser.Username)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"username":     newUser.Username,
	})
}

// Login verifies credentials and replaces the account's session. Tokens from
// earlier logins stop resolving immediately.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCredentials").(*Credentials)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("username = ?", reqData.Username).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		log.Printf("Login failed for %s: invalid credentials", reqData.Username)
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password!", nil)
	}

	token, err := openSession(db, &user)
	if err != nil {
		log.Printf("Error replacing session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	log.Printf("User %s logged in", user.Username)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"username":     user.Username,
	})
}

// openSession issues a fresh JWT and upserts the account's single session
// row with it.
func openSession(db *gorm.DB, user *models.User) (string, error) {
	token, err := middleware.GenerateJWT(user.ID, user.Username)
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(time.Duration(config.AppConfig.TokenExpireMinutes) * time.Minute)

	err = db.Transaction(func(tx *gorm.DB) error {
		var session models.Session
		if err := tx.Where("user_id = ?", user.ID).First(&session).Error; err != nil {
			session = models.Session{UserID: user.ID, Token: token, ExpiresAt: expiresAt}
			return tx.Create(&session).Error
		}
		session.Token = token
		session.ExpiresAt = expiresAt
		return tx.Save(&session).Error
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// UserList returns the usernames of all registered accounts.
func UserList(c *fiber.Ctx) error {
	var users []models.User
	if err := database.Database.Db.Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load users!", nil)
	}

	list := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		list = append(list, fiber.Map{"username": u.Username})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User list.", list)
}

// DeleteUser removes the caller's own account together with its entire
// group/question tree and any uploaded image blobs.
func DeleteUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	username := c.Params("username")
	db := database.Database.Db

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.ID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own account!", nil)
	}

	var blobs []string
	err := db.Transaction(func(tx *gorm.DB) error {
		paths, err := deleteAccountTree(tx, user.ID)
		blobs = paths
		return err
	})
	if err != nil {
		log.Printf("Error deleting user %s: %v", username, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	// Blobs go only once the rows are committed away
	for _, path := range blobs {
		utils.RemoveUploadedFile(path)
	}

	log.Printf("User %s deleted", username)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User "+username+" deleted.", nil)
}

// DeleteAllUsers wipes every account and every question tree.
func DeleteAllUsers(c *fiber.Ctx) error {
	db := database.Database.Db

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load users!", nil)
	}

	var blobs []string
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			paths, err := deleteAccountTree(tx, u.ID)
			if err != nil {
				return err
			}
			blobs = append(blobs, paths...)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error wiping accounts: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete users!", nil)
	}

	for _, path := range blobs {
		utils.RemoveUploadedFile(path)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All users and questions deleted!", nil)
}

// deleteAccountTree removes an account and everything it owns: session,
// groups, questions and answer options. Image blobs are NOT removed here —
// their paths are returned so the caller can delete them after the
// transaction commits; a rollback must leave every referenced file in place.
func deleteAccountTree(tx *gorm.DB, userID uint) ([]string, error) {
	var groups []models.QuestionGroup
	if err := tx.Preload("Questions").Where("user_id = ?", userID).Find(&groups).Error; err != nil {
		return nil, err
	}

	var blobs []string
	for _, g := range groups {
		for _, q := range g.Questions {
			if q.ImagePath != "" {
				blobs = append(blobs, q.ImagePath)
			}
			if err := tx.Unscoped().Where("question_id = ?", q.ID).Delete(&models.AnswerOption{}).Error; err != nil {
				return nil, err
			}
		}
		if err := tx.Unscoped().Where("group_id = ?", g.ID).Delete(&models.Question{}).Error; err != nil {
			return nil, err
		}
	}

	if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.QuestionGroup{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		return nil, err
	}
	return blobs, tx.Unscoped().Delete(&models.User{}, userID).Error
}

// Health reports liveness plus basic collection counts.
func Health(c *fiber.Ctx) error {
	db := database.Database.Db

	var userCount, questionCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Question{}).Count(&questionCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "healthy", fiber.Map{
		"timestamp": time.Now().Format(time.RFC3339),
		"users":     userCount,
		"questions": questionCount,
	})
}
