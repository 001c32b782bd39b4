package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/api/http/handlers"
	"github.com/hanzong05/kitapos-middleware/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Companies   *handlers.CompaniesHandler
	Stores      *handlers.StoresHandler
	Staff       *handlers.StaffHandler
	Categories  *handlers.CategoriesHandler
	Products    *handlers.ProductsHandler
	Inventory   *handlers.InventoryHandler
	Gate        *auth.Gate
	RateLimiter fiber.Handler
}

// RegisterRoutes wires HTTP routes. Every resource route passes the gate and
// the policy check before its handler; scoping happens inside the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	if cfg.RateLimiter != nil {
		authGroup.Post("/register", cfg.RateLimiter, cfg.Auth.Register)
		authGroup.Post("/login", cfg.RateLimiter, cfg.Auth.Login)
	} else {
		authGroup.Post("/register", cfg.Auth.Register)
		authGroup.Post("/login", cfg.Auth.Login)
	}
	authGroup.Post("/logout", cfg.Gate.Optional, cfg.Auth.Logout)
	authGroup.Get("/me", cfg.Gate.Require, cfg.Auth.Me)
	authGroup.Post("/password/change", cfg.Gate.Require, cfg.Auth.ChangePassword)

	users := app.Group("/users", cfg.Gate.Require)
	users.Get("/", auth.Require(auth.ResourceUsers, auth.OpList), cfg.Users.List)
	users.Get("/:id", auth.Require(auth.ResourceUsers, auth.OpGet), cfg.Users.Get)
	users.Post("/", auth.Require(auth.ResourceUsers, auth.OpCreate), cfg.Users.Create)
	users.Put("/:id", auth.Require(auth.ResourceUsers, auth.OpUpdate), cfg.Users.Update)
	users.Delete("/:id", auth.Require(auth.ResourceUsers, auth.OpDelete), cfg.Users.Delete)

	companies := app.Group("/companies", cfg.Gate.Require)
	companies.Get("/", auth.Require(auth.ResourceCompanies, auth.OpList), cfg.Companies.List)
	companies.Get("/:id", auth.Require(auth.ResourceCompanies, auth.OpGet), cfg.Companies.Get)
	companies.Post("/", auth.Require(auth.ResourceCompanies, auth.OpCreate), cfg.Companies.Create)
	companies.Put("/:id", auth.Require(auth.ResourceCompanies, auth.OpUpdate), cfg.Companies.Update)
	companies.Delete("/:id", auth.Require(auth.ResourceCompanies, auth.OpDelete), cfg.Companies.Delete)

	stores := app.Group("/stores", cfg.Gate.Require)
	stores.Get("/", auth.Require(auth.ResourceStores, auth.OpList), cfg.Stores.List)
	stores.Get("/:id", auth.Require(auth.ResourceStores, auth.OpGet), cfg.Stores.Get)
	stores.Post("/", auth.Require(auth.ResourceStores, auth.OpCreate), cfg.Stores.Create)
	stores.Put("/:id", auth.Require(auth.ResourceStores, auth.OpUpdate), cfg.Stores.Update)
	stores.Delete("/:id", auth.Require(auth.ResourceStores, auth.OpDelete), cfg.Stores.Delete)

	staff := app.Group("/staff", cfg.Gate.Require)
	staff.Get("/", auth.Require(auth.ResourceStaff, auth.OpList), cfg.Staff.List)
	staff.Get("/:id", auth.Require(auth.ResourceStaff, auth.OpGet), cfg.Staff.Get)
	staff.Post("/", auth.Require(auth.ResourceStaff, auth.OpCreate), cfg.Staff.Create)
	staff.Put("/:id", auth.Require(auth.ResourceStaff, auth.OpUpdate), cfg.Staff.Update)
	staff.Delete("/:id", auth.Require(auth.ResourceStaff, auth.OpDelete), cfg.Staff.Delete)

	categories := app.Group("/categories", cfg.Gate.Require)
	categories.Get("/", auth.Require(auth.ResourceCategories, auth.OpList), cfg.Categories.List)
	categories.Get("/:id", auth.Require(auth.ResourceCategories, auth.OpGet), cfg.Categories.Get)
	categories.Post("/", auth.Require(auth.ResourceCategories, auth.OpCreate), cfg.Categories.Create)
	categories.Put("/:id", auth.Require(auth.ResourceCategories, auth.OpUpdate), cfg.Categories.Update)
	categories.Delete("/:id", auth.Require(auth.ResourceCategories, auth.OpDelete), cfg.Categories.Delete)

	products := app.Group("/products", cfg.Gate.Require)
	products.Get("/", auth.Require(auth.ResourceProducts, auth.OpList), cfg.Products.List)
	products.Get("/:id", auth.Require(auth.ResourceProducts, auth.OpGet), cfg.Products.Get)
	products.Post("/", auth.Require(auth.ResourceProducts, auth.OpCreate), cfg.Products.Create)
	products.Put("/:id", auth.Require(auth.ResourceProducts, auth.OpUpdate), cfg.Products.Update)
	products.Delete("/:id", auth.Require(auth.ResourceProducts, auth.OpDelete), cfg.Products.Delete)

	inventory := app.Group("/inventory", cfg.Gate.Require)
	inventory.Get("/", auth.Require(auth.ResourceInventory, auth.OpList), cfg.Inventory.List)
	inventory.Get("/:id", auth.Require(auth.ResourceInventory, auth.OpGet), cfg.Inventory.Get)
	inventory.Post("/", auth.Require(auth.ResourceInventory, auth.OpCreate), cfg.Inventory.Create)
}
