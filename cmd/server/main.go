package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Pratham08dixit/resume/internal/config"
	"github.com/Pratham08dixit/resume/internal/domain/fiber/handler"
	"github.com/Pratham08dixit/resume/internal/middleware"
	"github.com/Pratham08dixit/resume/internal/service"
	"github.com/Pratham08dixit/resume/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	generator := newGenerator(ctx)
	uc := usecase.NewAnalysisUsecase(generator)
	handler := handler.NewAnalyzeHandler(uc)
	handler.RegisterRoutes(app)

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// newGenerator picks the generation provider. A missing credential for the
// chosen provider is fatal before any request is served.
func newGenerator(ctx context.Context) service.Generator {
	llmConfig := config.LoadLLMConfig()
	switch llmConfig.Provider {
	case "openrouter":
		generator, err := service.NewOpenRouterService()
		if err != nil {
			log.Fatal(err)
		}
		return generator
	case "gemini":
		generator, err := service.NewGeminiService(ctx)
		if err != nil {
			log.Fatal(err)
		}
		return generator
	default:
		log.Fatalf("unknown LLM provider %q", llmConfig.Provider)
		return nil
	}
}
