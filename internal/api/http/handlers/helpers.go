package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/hanzong05/kitapos-middleware/internal/auth"
)

// identityOf fetches the gate-attached identity. Routes behind the policy
// middleware always carry one; a miss means a wiring bug.
func identityOf(c *fiber.Ctx) (*auth.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	return identity, nil
}

// overrideOf reads the admin-only scope narrowing parameters. Non-admin
// callers may send them; the resolver ignores them.
func overrideOf(c *fiber.Ctx) auth.Override {
	return auth.Override{
		CompanyID: c.Query("company_id"),
		StoreID:   c.Query("store_id"),
	}
}

func pageOf(c *fiber.Ctx) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit", "50"))
	offset, _ = strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
