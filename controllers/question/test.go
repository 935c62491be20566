package questionController

import (
	"log"

	"github.com/Thedarik/Quations/middleware"
	"github.com/Thedarik/Quations/services/assembler"

	"github.com/gofiber/fiber/v2"
)

// TestQuestions assembles a randomized test set from one of the caller's
// groups. Both shuffle flags default to true; with both set to false the
// stored order comes back unchanged (authoring preview). An unknown group
// or an account without records yields a regular 200 response whose payload
// reports what is available, not an error.
func TestQuestions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	groupTitle := c.Query("group_title")
	if groupTitle == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "group_title query parameter is required!", nil)
	}

	shuffleQuestions := c.QueryBool("shuffle_questions", true)
	shuffleAnswers := c.QueryBool("shuffle_answers", true)

	groups, err := loadGroups(userID)
	if err != nil {
		log.Printf("Error loading groups for test: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load questions!", nil)
	}

	testSet := assembler.Assemble(groups, groupTitle, shuffleQuestions, shuffleAnswers)

	return middleware.JsonResponse(c, fiber.StatusOK, true, testSet.Message, testSet)
}
