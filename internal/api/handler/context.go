package handler

import "github.com/labstack/echo/v4"

// actor names the caller for audit logs. The Auth middleware injects the
// username claim; open deployments have none.
func actor(c echo.Context) string {
	if name, _ := c.Get("username").(string); name != "" {
		return name
	}
	return "anonymous"
}
