package httpx

import (
	"net/http"

	"github.com/dmitrijs2005/matcheat/internal/common"
	"github.com/dmitrijs2005/matcheat/internal/server/models"
	"github.com/dmitrijs2005/matcheat/internal/server/services"
	"github.com/dmitrijs2005/matcheat/internal/server/validation"
)

type idResponse struct {
	ID string `json:"id"`
}

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	var body validation.Register
	if !r.decode(w, req, &body) {
		return
	}

	id, err := r.accounts.Register(req.Context(), services.RegisterInput{
		Handle:   *body.Handle,
		Email:    *body.Email,
		Password: *body.Password,
		Image:    *body.Image,
	})
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

type loginResponse struct {
	Token    string          `json:"token"`
	ID       string          `json:"id"`
	Handle   string          `json:"handle"`
	Image    string          `json:"image"`
	Settings models.Settings `json:"settings"`
	Home     string          `json:"home,omitempty"`
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body validation.Login
	if !r.decode(w, req, &body) {
		return
	}

	res, err := r.accounts.Login(req.Context(), *body.Email, *body.Password)
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}

	w.Header().Set(common.TokenHeaderName, res.Token)
	writeJSON(w, http.StatusOK, loginResponse{
		Token:    res.Token,
		ID:       res.ID,
		Handle:   res.Handle,
		Image:    res.Image,
		Settings: res.Settings,
		Home:     res.Home,
	})
}

func (r *Router) handleGetS3URL(w http.ResponseWriter, req *http.Request) {
	var body validation.UploadURL
	if !r.decode(w, req, &body) {
		return
	}

	u, err := r.storage.PresignUpload(req.Context(), *body.FileName, *body.FileType)
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (r *Router) handleTestToken(w http.ResponseWriter, req *http.Request) {
	userID, _ := UserIDFromContext(req.Context())
	writeJSON(w, http.StatusOK, map[string]string{"data": userID})
}

func (r *Router) handleChangeHandle(w http.ResponseWriter, req *http.Request) {
	var body validation.ChangeHandle
	if !r.decode(w, req, &body) {
		return
	}
	if err := r.accounts.ChangeHandle(req.Context(), *body.Handle, *body.NewHandle, *body.Password); err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeSuccess(w, "")
}

func (r *Router) handleChangeEmail(w http.ResponseWriter, req *http.Request) {
	var body validation.ChangeEmail
	if !r.decode(w, req, &body) {
		return
	}
	if err := r.accounts.ChangeEmail(req.Context(), *body.Handle, *body.Email, *body.Password); err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeSuccess(w, "")
}

func (r *Router) handleChangePassword(w http.ResponseWriter, req *http.Request) {
	var body validation.ChangePassword
	if !r.decode(w, req, &body) {
		return
	}
	if err := r.accounts.ChangePassword(req.Context(), *body.Handle, *body.Password, *body.NewPassword); err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeSuccess(w, "")
}

func (r *Router) handleChangeImage(w http.ResponseWriter, req *http.Request) {
	var body validation.ChangeImage
	if !r.decode(w, req, &body) {
		return
	}
	res, err := r.accounts.ChangeImage(req.Context(), *body.Handle, *body.Password, *body.Image)
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeSuccess(w, res.Warning)
}

func (r *Router) handleChangeSettings(w http.ResponseWriter, req *http.Request) {
	var body validation.ChangeSettings
	if !r.decode(w, req, &body) {
		return
	}
	if err := r.accounts.ChangeSettings(req.Context(), *body.Handle, *body.Settings); err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeSuccess(w, "")
}

func (r *Router) handleDeleteAccount(w http.ResponseWriter, req *http.Request) {
	var body validation.DeleteAccount
	if !r.decode(w, req, &body) {
		return
	}
	res, err := r.accounts.DeleteAccount(req.Context(), *body.Handle, *body.Password)
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeSuccess(w, res.Warning)
}

func (r *Router) handleCreateHome(w http.ResponseWriter, req *http.Request) {
	var body validation.CreateHome
	if !r.decode(w, req, &body) {
		return
	}
	id, err := r.groups.CreateHome(req.Context(), services.CreateHomeInput{
		Name:     *body.Name,
		Password: *body.Password,
		Image:    *body.Image,
	})
	if err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

func (r *Router) handleJoinHome(w http.ResponseWriter, req *http.Request) {
	var body validation.JoinHome
	if !r.decode(w, req, &body) {
		return
	}
	if err := r.groups.JoinHome(req.Context(), *body.Name, *body.Handle, *body.Password); err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeSuccess(w, "")
}

func (r *Router) handleLeaveHome(w http.ResponseWriter, req *http.Request) {
	var body validation.LeaveHome
	if !r.decode(w, req, &body) {
		return
	}
	if err := r.groups.LeaveHome(req.Context(), *body.Handle); err != nil {
		r.writeServiceError(w, req, err)
		return
	}
	writeSuccess(w, "")
}
