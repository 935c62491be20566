package questionController

import (
	"log"

	"github.com/Thedarik/Quations/middleware"
	"github.com/Thedarik/Quations/services/assembler"
	"github.com/Thedarik/Quations/services/exporter"

	"github.com/gofiber/fiber/v2"
)

// ExportPDF renders one of the caller's groups as a printable PDF. Questions
// come out in stored (unshuffled) order.
func ExportPDF(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	groupTitle := c.Query("group_title")
	if groupTitle == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "group_title query parameter is required!", nil)
	}

	groups, err := loadGroups(userID)
	if err != nil {
		log.Printf("Error loading groups for export: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load questions!", nil)
	}

	// Identity mode gives the raw question list in stored order
	testSet := assembler.Assemble(groups, groupTitle, false, false)
	if testSet.GroupTitle == "" {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, testSet.Message, fiber.Map{
			"available_groups": testSet.AvailableGroups,
		})
	}

	pdfBytes, err := exporter.Render(groupTitle, testSet.Questions)
	if err != nil {
		log.Printf("Error rendering PDF for group %s: %v", groupTitle, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to render PDF!", nil)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+groupTitle+`.pdf"`)
	return c.Send(pdfBytes)
}
