// User HTTP handlers.
//
// This file exposes the account endpoints:
//   - /api/user/session          sign in, check, sign out
//   - /api/user/session/success  landing page after a session check
//   - /api/user/register         multi-step sign-up
//   - /api/user/profile          nickname and avatar update
//   - /api/user/profile/avatar   avatar download
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pigskit/pigskit-server/internal/http/filter"
	"github.com/pigskit/pigskit-server/internal/http/session"
	"github.com/pigskit/pigskit-server/internal/services"
)

//
// DTOs
//

// SignInRequest is the JSON payload for signing in.
type SignInRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"Secret123"`
}

// FieldQuery names the registration field to read.
type FieldQuery struct {
	Operation string `form:"operation" binding:"required" example:"email"`
}

// StepRequest is one registration step. Data is ignored by submit.
type StepRequest struct {
	Operation string  `json:"operation" binding:"required" example:"email"`
	Data      *string `json:"data" example:"alice@example.com"`
}

// AvatarQuery selects whether a missing avatar falls back to the default.
type AvatarQuery struct {
	Default bool `form:"default" example:"true"`
}

// SessionSuccessPath is where a successful session check redirects.
const SessionSuccessPath = "/api/user/session/success"

var (
	signInKey      = filter.NewKey[SignInRequest]("signin")
	fieldQueryKey  = filter.NewKey[FieldQuery]("register.field")
	stepKey        = filter.NewKey[StepRequest]("register.step")
	avatarQueryKey = filter.NewKey[AvatarQuery]("avatar.query")
)

//
// Session
//

// SignIn godoc
// @ID          signIn
// @Summary     Sign in
// @Description Verifies credentials and sets the USSID cookie. A session already carried by the request is ended first.
// @Tags        Session
// @Accept      json
// @Param       body  body  handlers.SignInRequest  true  "Credentials"
// @Success     200   "USSID cookie set"
// @Failure     400   {object}  apierr.Envelope  "MissingBody / InvalidData"
// @Failure     401   {object}  apierr.Envelope  "Unauthorized"
// @Router      /api/user/session [post]
func (h *Handlers) SignIn() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPost),
		session.OptionalToken(session.User, userTokenKey),
		filter.JSON(signInKey),
		func(c *gin.Context) error {
			req := signInKey.Value(c)
			token, err := h.accounts.SignIn(c.Request.Context(), userTokenKey.Value(c), req.Username, req.Password)
			if err != nil {
				return err
			}
			h.sessions.Issue(c, session.User, token)
			return done(c)
		},
	)
}

// CheckSession godoc
// @ID          checkSession
// @Summary     Check the user session
// @Description Redirects to the success page when USSID names a live session.
// @Tags        Session
// @Success     303
// @Header      303  {string}  Location  "/api/user/session/success"
// @Failure     400  {object}  apierr.Envelope  "NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Router      /api/user/session [get]
func (h *Handlers) CheckSession() filter.Filter {
	return filter.And(
		filter.Method(http.MethodGet),
		h.sessions.Required(session.User, userKey),
		func(c *gin.Context) error {
			c.Redirect(http.StatusSeeOther, SessionSuccessPath)
			return nil
		},
	)
}

// SessionSuccess godoc
// @ID          sessionSuccess
// @Summary     Session check landing page
// @Tags        Session
// @Produce     plain
// @Success     200  {string}  string  "Signed in."
// @Failure     400  {object}  apierr.Envelope  "NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Router      /api/user/session/success [get]
func (h *Handlers) SessionSuccess() filter.Filter {
	return filter.And(
		filter.Method(http.MethodGet),
		h.sessions.Required(session.User, userKey),
		func(c *gin.Context) error { return text(c, "Signed in.") },
	)
}

// SignOut godoc
// @ID          signOut
// @Summary     Sign out
// @Description Ends the session named by USSID, if any, and expires the cookie. Always succeeds.
// @Tags        Session
// @Success     200  "USSID cookie cleared"
// @Router      /api/user/session [delete]
func (h *Handlers) SignOut() filter.Filter {
	return filter.And(
		filter.Method(http.MethodDelete),
		session.OptionalToken(session.User, userTokenKey),
		func(c *gin.Context) error {
			h.accounts.SignOut(c.Request.Context(), userTokenKey.Value(c))
			h.sessions.Clear(c, session.User)
			return done(c)
		},
	)
}

//
// Registration
//

// RegisterField godoc
// @ID          registerField
// @Summary     Read a registration field
// @Description Returns the value stored by an earlier step; null when the step has not run. The password cannot be read.
// @Tags        Register
// @Produce     json
// @Param       operation  query  string  true  "Field name"  Enums(email, phone, username)
// @Success     200  {object}  handlers.FieldResponse
// @Failure     400  {object}  apierr.Envelope  "MissingBody / UnsupportedOperation / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Router      /api/user/register [get]
func (h *Handlers) RegisterField() filter.Filter {
	return filter.And(
		filter.Method(http.MethodGet),
		h.sessions.Required(session.Registration, regKey),
		filter.Query(fieldQueryKey),
		func(c *gin.Context) error {
			v, err := h.registration.Field(c.Request.Context(), regKey.Value(c), fieldQueryKey.Value(c).Operation)
			if err != nil {
				return err
			}
			c.JSON(http.StatusOK, FieldResponse{Data: v})
			return nil
		},
	)
}

// RegisterStart godoc
// @ID          registerStart
// @Summary     Start registration
// @Description Opens an empty registration session and sets the REGSSID cookie, replacing any session the request carries.
// @Tags        Register
// @Success     200  "REGSSID cookie set"
// @Router      /api/user/register [post]
func (h *Handlers) RegisterStart() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPost),
		session.OptionalToken(session.Registration, regTokenKey),
		func(c *gin.Context) error {
			id, err := h.registration.Start(c.Request.Context(), regTokenKey.Value(c))
			if err != nil {
				return err
			}
			h.sessions.Issue(c, session.Registration, id)
			return done(c)
		},
	)
}

// RegisterStep godoc
// @ID          registerStep
// @Summary     Run a registration step
// @Description Stores one field, or submits the session as a new user when operation is "submit".
// @Tags        Register
// @Accept      json
// @Produce     plain
// @Param       body  body  handlers.StepRequest  true  "Step"
// @Success     200  {string}  string  "Success."
// @Failure     400  {object}  apierr.Envelope  "MissingBody / InvalidData / UnsupportedOperation / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Failure     409  {object}  apierr.Envelope  "UniqueDataConflict"
// @Router      /api/user/register [patch]
func (h *Handlers) RegisterStep() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPatch),
		h.sessions.Required(session.Registration, regKey),
		filter.JSON(stepKey),
		func(c *gin.Context) error {
			req := stepKey.Value(c)
			if err := h.registration.Step(c.Request.Context(), regKey.Value(c), req.Operation, req.Data); err != nil {
				return err
			}
			return text(c, "Success.")
		},
	)
}

//
// Profile
//

// UpdateProfile godoc
// @ID          updateProfile
// @Summary     Update the profile
// @Description Sets the nickname and replaces or deletes the avatar. delete_avatar wins over avatar.
// @Tags        Profile
// @Accept      multipart/form-data
// @Produce     plain
// @Param       nickname       formData  string  false  "New nickname"
// @Param       avatar         formData  file    false  "New avatar"
// @Param       delete_avatar  formData  bool    false  "Remove the avatar"
// @Success     200  {string}  string  "Successfully updated."
// @Failure     400  {object}  apierr.Envelope  "NoValidForm / NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Failure     413  {object}  apierr.Envelope  "PayloadTooLarge"
// @Router      /api/user/profile [patch]
func (h *Handlers) UpdateProfile() filter.Filter {
	return filter.And(
		filter.Method(http.MethodPatch),
		h.sessions.Required(session.User, userKey),
		h.profileForm.Filter(formKey),
		func(c *gin.Context) error {
			v := formKey.Value(c)
			var u services.ProfileUpdate
			if s, ok := v.OptText("nickname"); ok {
				u.Nickname = &s
			}
			u.Avatar, _ = v.OptBytes("avatar")
			u.DeleteAvatar, _ = v.OptBool("delete_avatar")

			if err := h.profiles.Update(c.Request.Context(), userKey.Value(c), u); err != nil {
				return err
			}
			return text(c, "Successfully updated.")
		},
	)
}

// ProfileAvatar godoc
// @ID          profileAvatar
// @Summary     Download the avatar
// @Description Returns the signed-in user's avatar. With default=true a missing avatar is answered with the default image.
// @Tags        Profile
// @Produce     image/jpeg
// @Param       default  query  bool  false  "Fall back to the default avatar"
// @Success     200  {file}    binary
// @Failure     400  {object}  apierr.Envelope  "NoValidCookie"
// @Failure     401  {object}  apierr.Envelope  "SessionExpired"
// @Failure     404  {object}  apierr.Envelope  "DataNotFound"
// @Router      /api/user/profile/avatar [get]
func (h *Handlers) ProfileAvatar() filter.Filter {
	return filter.And(
		filter.Method(http.MethodGet),
		h.sessions.Required(session.User, userKey),
		filter.Query(avatarQueryKey),
		func(c *gin.Context) error {
			data, err := h.profiles.Avatar(c.Request.Context(), userKey.Value(c), avatarQueryKey.Value(c).Default)
			if err != nil {
				return err
			}
			return image(c, data)
		},
	)
}
