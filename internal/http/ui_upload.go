package httpx

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
	"github.com/newsboard/newsboard/internal/domain/model"
	apperrors "github.com/newsboard/newsboard/internal/errors"
	"github.com/newsboard/newsboard/internal/http/ui/viewmodel"
	"github.com/newsboard/newsboard/internal/service"
)

const errMsgImageTooLarge = "Image is too large"

// UploadForm holds the re-rendered upload form values. The file is never echoed.
type UploadForm struct {
	Title       string
	Description string
	Email       string
}

type uploadView struct {
	Form      UploadForm
	Errors    map[string]string
	FlashKind viewmodel.FlashKind
	Flash     string
}

var uploadMeta = PageMeta{Title: "Upload News", PageTitle: "Upload", CurrentPage: PageUpload}

// Home handles GET /: the auth form for anonymous visitors, the upload form otherwise.
func (h *UIHandlers) Home(w http.ResponseWriter, r *http.Request) {
	if session := GetSessionFromContext(r.Context()); session != nil {
		h.renderUpload(w, r, uploadView{Form: UploadForm{Email: session.Email}})
		return
	}
	h.renderAuth(w, r, authView{Mode: domainauth.ParseMode(r.URL.Query().Get("mode"))})
}

// Upload handles POST /upload. RequireAuthBrowser guarantees a session.
func (h *UIHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	sub, err := readSubmission(r)
	// The identity label always comes from the session, never from the form.
	if session != nil {
		sub.Email = session.Email
	}
	form := UploadForm{Title: sub.Title, Description: sub.Description, Email: sub.Email}
	if err != nil {
		var tooLarge *http.MaxBytesError
		msg := service.SomethingWentWrong
		if errors.As(err, &tooLarge) {
			msg = errMsgImageTooLarge
		}
		h.logger().ErrorContext(r.Context(), "reading upload form failed", "error", err)
		h.renderUpload(w, r, uploadView{Form: form, FlashKind: viewmodel.FlashError, Flash: msg})
		return
	}

	if err := h.News.Upload(r.Context(), sub); err != nil {
		view := uploadView{Form: form, FlashKind: viewmodel.FlashError, Flash: service.UploadFailureMessage(err)}
		if field := apperrors.GetField(err); field != "" {
			view.Errors = map[string]string{field: view.Flash}
		}
		h.renderUpload(w, r, view)
		return
	}

	// Success clears the form but keeps the identity label.
	h.renderUpload(w, r, uploadView{
		Form:      UploadForm{Email: form.Email},
		FlashKind: viewmodel.FlashSuccess,
		Flash:     service.UploadSucceededMessage,
	})
}

// BodyTooLarge answers a form post whose body exceeded the upload limit
// before its CSRF token could be checked. Nothing is submitted; the user
// gets the form back with a banner.
func (h *UIHandlers) BodyTooLarge(w http.ResponseWriter, r *http.Request) {
	h.logger().WarnContext(r.Context(), "request body too large", "path", r.URL.Path)
	if !IsBrowserRequest(r) {
		WriteError(w, APIError{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    "request_too_large",
			Message: errMsgImageTooLarge,
		})
		return
	}

	session := GetSessionFromContext(r.Context())
	if session == nil {
		h.renderAuth(w, r, authView{Mode: domainauth.ModeLogin, Error: errMsgImageTooLarge})
		return
	}
	h.renderUpload(w, r, uploadView{
		Form:      UploadForm{Email: session.Email},
		FlashKind: viewmodel.FlashError,
		Flash:     errMsgImageTooLarge,
	})
}

// readSubmission extracts the multipart form. A missing file is not an error
// here; validation reports it.
func readSubmission(r *http.Request) (model.NewsSubmission, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return model.NewsSubmission{}, err
	}

	sub := model.NewsSubmission{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return sub, nil
	}
	if err != nil {
		return sub, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return sub, err
	}
	sub.FileName = header.Filename
	sub.FileType = fileType(header, content)
	sub.Content = content
	return sub, nil
}

// fileType prefers the part's declared type and sniffs when the browser sent
// none or the generic octet-stream.
func fileType(header *multipart.FileHeader, content []byte) string {
	declared := strings.TrimSpace(header.Header.Get("Content-Type"))
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	sniffed := http.DetectContentType(content)
	if i := strings.IndexByte(sniffed, ';'); i >= 0 {
		sniffed = sniffed[:i]
	}
	return sniffed
}

func (h *UIHandlers) renderUpload(w http.ResponseWriter, r *http.Request, v uploadView) {
	data := NewTemplateData(r, uploadMeta).
		WithFieldErrors(v.Errors).
		WithFlash(v.FlashKind, v.Flash).
		With("Form", v.Form).
		With("Mode", string(domainauth.ModeLogin)).
		Build()
	h.renderPage(w, r, data)
}

func (h *UIHandlers) renderAuth(w http.ResponseWriter, r *http.Request, v authView) {
	title := "Log in"
	if v.Mode == domainauth.ModeSignup {
		title = "Sign up"
	}
	data := NewTemplateData(r, PageMeta{Title: title, PageTitle: title, CurrentPage: PageUpload}).
		WithFieldErrors(nil).
		With("Form", v.Form).
		With("Mode", string(v.Mode)).
		With("AuthError", v.Error).
		With("Notice", v.Notice).
		Build()
	// A failed login never leaves an identity behind.
	data["IsAuthenticated"] = false
	h.renderPage(w, r, data)
}
