package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/IAMC-DH/my-site-template/internal/models"
	"github.com/IAMC-DH/my-site-template/internal/site"

	"golang.org/x/crypto/bcrypt"
)

func (s *Server) renderError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmplFunc(w, "error.html", nil); err != nil {
		slog.Error("Failed to render error template", "error", err)
	}
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	editMode := s.store.EditMode()

	data := models.IndexPageData{
		Footer:        s.footer.Info(),
		FooterVisible: s.footer.Visible(editMode),
		NavItems:      s.footer.NavItems(),
		Quick:         s.quick.Config(),
		CallNumber:    s.quick.CallNumber(),
		EditMode:      editMode,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmplFunc(w, "index.html", data); err != nil {
		slog.Error("Failed to render index template", "error", err)
	}
}

func (s *Server) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	token := s.getSessionFromRequest(r)
	if s.validateSession(token) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmplFunc(w, "login.html", map[string]string{}); err != nil {
		slog.Error("Failed to render login template", "error", err)
	}
}

func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	password := r.FormValue("password")

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.tmplFunc(w, "login.html", map[string]string{"Error": "Invalid password"}); err != nil {
			slog.Error("Failed to render login template", "error", err)
		}
		return
	}

	token := s.createSession()
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   86400,
		SameSite: http.SameSiteStrictMode,
	})

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token := s.getSessionFromRequest(r)
	s.deleteSession(token)

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	items := s.footer.NavSource()
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		slog.Error("Failed to encode navigation items", "error", err)
		s.renderError(w, http.StatusInternalServerError)
		return
	}

	data := models.AdminPageData{
		Footer:       s.footer.Info(),
		NavItems:     items,
		NavItemsJSON: string(itemsJSON),
		Quick:        s.quick.Config(),
		EditMode:     s.store.EditMode(),
		Message:      r.URL.Query().Get("message"),
		Error:        r.URL.Query().Get("error"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmplFunc(w, "admin.html", data); err != nil {
		slog.Error("Failed to render admin template", "error", err)
	}
}

func (s *Server) HandleUpdateFooter(w http.ResponseWriter, r *http.Request) {
	field := r.FormValue("field")
	if field == "" {
		http.Redirect(w, r, "/admin?error=Field+is+required", http.StatusSeeOther)
		return
	}

	err := s.footer.UpdateInfo(r.Context(), field, parseFormValue(r.FormValue("value")))
	if errors.Is(err, site.ErrProtectedField) {
		http.Redirect(w, r, "/admin?error=This+field+is+protected", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("Failed to update footer", "field", field, "error", err)
		http.Redirect(w, r, "/admin?error=Failed+to+save", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin?message=Footer+updated", http.StatusSeeOther)
}

func (s *Server) HandleUpdateNav(w http.ResponseWriter, r *http.Request) {
	var items []models.NavItem
	if err := json.Unmarshal([]byte(r.FormValue("items")), &items); err != nil {
		http.Redirect(w, r, "/admin?error=Invalid+navigation+items", http.StatusSeeOther)
		return
	}

	if err := s.footer.UpdateNav(r.Context(), items); err != nil {
		slog.Error("Failed to update navigation", "error", err)
		http.Redirect(w, r, "/admin?error=Failed+to+save", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin?message=Navigation+updated", http.StatusSeeOther)
}

func (s *Server) HandleUpdateQuickActions(w http.ResponseWriter, r *http.Request) {
	field := r.FormValue("field")
	if field == "" {
		http.Redirect(w, r, "/admin?error=Field+is+required", http.StatusSeeOther)
		return
	}

	if err := s.quick.Update(r.Context(), field, parseFormValue(r.FormValue("value"))); err != nil {
		slog.Error("Failed to update quick actions", "field", field, "error", err)
		http.Redirect(w, r, "/admin?error=Failed+to+save", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin?message=Quick+actions+updated", http.StatusSeeOther)
}

func (s *Server) HandleEditMode(w http.ResponseWriter, r *http.Request) {
	s.store.SetEditMode(r.FormValue("enabled") == "true")
	http.Redirect(w, r, "/admin?message=Edit+mode+updated", http.StatusSeeOther)
}

func (s *Server) HandleExport(w http.ResponseWriter, r *http.Request) {
	switch r.FormValue("section") {
	case site.KeyFooterInfo:
		s.store.SaveToFile("footer", "", s.footer.Info())
	case site.KeyNavConfig:
		s.store.SaveToFile("nav", "", map[string]any{"items": s.footer.NavSource()})
	case site.KeyQuickActions:
		s.store.SaveToFile("quick-actions", "", s.quick.Config())
	default:
		http.Redirect(w, r, "/admin?error=Unknown+section", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin?message=Export+started", http.StatusSeeOther)
}

// parseFormValue maps the form's string encoding of toggles back to booleans;
// everything else stays text.
func parseFormValue(v string) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}

func (s *Server) serveFile(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := s.assets.Open(path)
		if err != nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		defer func() { _ = file.Close() }()
		_, _ = io.Copy(w, file)
	}
}

func (s *Server) cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/") {
			w.Header().Set("Cache-Control", "public, max-age=86400")
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		next.ServeHTTP(w, r)
	})
}
