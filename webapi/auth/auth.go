package auth

import (
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the authentication endpoints under r. Everything but
// register and login requires protected.
func Routes(r fiber.Router, authSvc *authsvc.Service, protected fiber.Handler) {
	g := r.Group("/auth")
	g.Post("/register", Register(authSvc))
	g.Post("/login", Login(authSvc))
	g.Get("/session", protected, GetSession(authSvc))
	g.Get("/me", protected, Me(authSvc))
	g.Post("/logout", protected, Logout(authSvc))
	g.Get("/sessions", protected, ListSessions(authSvc))
	g.Post("/revoke-sessions", protected, RevokeSessions(authSvc))
	g.Put("/profile", protected, UpdateProfile(authSvc))
	g.Post("/change-password", protected, ChangePassword(authSvc))
}

func sessionMeta(c *fiber.Ctx) authsvc.SessionMeta {
	return authsvc.SessionMeta{IPAddress: c.IP(), UserAgent: c.Get(fiber.HeaderUserAgent)}
}

// Register creates an account and returns it with a token.
// @Summary Register
// @Description Create a user account and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterInput true "Account data"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 409 {object} common.Response
// @Failure 422 {object} common.Response
// @Router /api/auth/register [post]
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}
		res, err := authSvc.Register(c.UserContext(), input.Email, input.Name, input.Password, sessionMeta(c))
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, AuthDTO{User: toUserDTO(res.User), Token: res.Token})
	}
}

// Login handles user authentication and returns a JWT token.
// @Summary User login
// @Description Authenticate user with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginInput true "Login credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 401 {object} common.Response
// @Failure 429 {object} common.Response
// @Router /api/auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		res, err := authSvc.Login(c.UserContext(), input.Email, input.Password, sessionMeta(c))
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, AuthDTO{User: toUserDTO(res.User), Token: res.Token})
	}
}

// GetSession returns the current session and its user.
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.Response
// @Router /api/auth/session [get]
// @Security Bearer
func GetSession(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		view, err := authSvc.GetSession(c.UserContext(), p)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, SessionInfoDTO{
			Session: toSessionDTO(view.Session, p.SessionID),
			User:    toUserDTO(view.User),
		})
	}
}

// Me returns the authenticated user.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.Response
// @Router /api/auth/me [get]
// @Security Bearer
func Me(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		u, err := authSvc.Me(c.UserContext(), p.UserID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, toUserDTO(u))
	}
}

// Logout revokes the current session.
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.Response
// @Router /api/auth/logout [post]
// @Security Bearer
func Logout(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		if err := authSvc.SignOut(c.UserContext(), p); err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.MessageResponseJSON(c, fiber.StatusOK, "Signed out successfully")
	}
}

// ListSessions returns the caller's active sessions, newest first.
// @Summary Active sessions
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.Response
// @Router /api/auth/sessions [get]
// @Security Bearer
func ListSessions(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		sessions, err := authSvc.ListSessions(c.UserContext(), p.UserID)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		out := make([]SessionDTO, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, toSessionDTO(s, p.SessionID))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, out)
	}
}

// RevokeSessions signs out every other session of the caller.
// @Summary Revoke other sessions
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.Response
// @Router /api/auth/revoke-sessions [post]
// @Security Bearer
func RevokeSessions(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		n, err := authSvc.RevokeOtherSessions(c.UserContext(), p)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, fiber.Map{"revoked": n})
	}
}

// UpdateProfile changes the caller's name or image.
// @Summary Update profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ProfileInput true "Profile fields"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.Response
// @Failure 422 {object} common.Response
// @Router /api/auth/profile [put]
// @Security Bearer
func UpdateProfile(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		input, err := common.BindAndValidate[ProfileInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.UpdateProfile(c.UserContext(), p.UserID, authsvc.ProfileUpdate{
			Name:  input.Name,
			Image: input.Image,
		})
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, toUserDTO(u))
	}
}

// ChangePassword replaces the caller's password and revokes other sessions.
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordInput true "Current and new password"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.Response
// @Failure 401 {object} common.Response
// @Failure 422 {object} common.Response
// @Router /api/auth/change-password [post]
// @Security Bearer
func ChangePassword(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := common.CurrentUser(c)
		if err != nil {
			return common.ErrorJSON(c, err)
		}
		input, err := common.BindAndValidate[ChangePasswordInput](c)
		if input == nil {
			return err
		}
		if err := authSvc.ChangePassword(c.UserContext(), p, input.CurrentPassword, input.NewPassword); err != nil {
			return common.ErrorJSON(c, err)
		}
		return common.MessageResponseJSON(c, fiber.StatusOK, "Password changed successfully")
	}
}
