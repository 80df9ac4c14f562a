package routes

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPISource []byte

var (
	openAPIOnce sync.Once
	openAPIDoc  map[string]any
	openAPIErr  error
)

func loadOpenAPI() (map[string]any, error) {
	openAPIOnce.Do(func() {
		var doc map[string]any
		if err := yaml.Unmarshal(openAPISource, &doc); err != nil {
			openAPIErr = fmt.Errorf("parse openapi document: %w", err)
			return
		}
		openAPIDoc = doc
	})
	return openAPIDoc, openAPIErr
}

func OpenAPI(ctx *fiber.Ctx) error {
	doc, err := loadOpenAPI()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return ctx.JSON(doc)
}
