package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ppiankov/dayfacts/internal/session"
	"github.com/ppiankov/dayfacts/internal/sidebar"
	"github.com/ppiankov/dayfacts/internal/util"
)

type sidebarsResponse struct {
	Births []sidebar.Entry `json:"births"`
	Deaths []sidebar.Entry `json:"deaths"`
}

func (s *Server) handleFact(w http.ResponseWriter, r *http.Request) {
	s.respondView(w, r, func(*session.Session) error { return nil })
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.respondView(w, r, func(sess *session.Session) error {
		sess.Next()
		return nil
	})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.respondView(w, r, func(sess *session.Session) error {
		_, err := sess.SetCategory(name)
		return err
	})
}

func (s *Server) handleSidebars(w http.ResponseWriter, r *http.Request) {
	var resp sidebarsResponse
	err := s.withVisitor(w, r, func(sess *session.Session) {
		v := sess.View()
		resp = sidebarsResponse{Births: v.Births, Deaths: v.Deaths}
	})
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// respondView runs action on the visitor's session and writes the resulting
// view. Action errors are category lookups and map to 404.
func (s *Server) respondView(w http.ResponseWriter, r *http.Request, action func(*session.Session) error) {
	var (
		view      session.View
		actionErr error
	)
	err := s.withVisitor(w, r, func(sess *session.Session) {
		actionErr = action(sess)
		view = sess.View()
	})
	if err != nil {
		s.internalError(w, err)
		return
	}
	if actionErr != nil {
		writeError(w, http.StatusNotFound, actionErr.Error())
		return
	}

	status := http.StatusOK
	if view.Error != "" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, view)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var view session.View
	err := s.withVisitor(w, r, func(sess *session.Session) {
		view = sess.View()
	})
	if err != nil {
		s.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, newPageData(view, s.opts.FadeOut, s.opts.FadeIn)); err != nil {
		util.Log.WithError(err).Error("render page")
	}
}

func (s *Server) handleNextForm(w http.ResponseWriter, r *http.Request) {
	err := s.withVisitor(w, r, func(sess *session.Session) {
		sess.Next()
	})
	if err != nil {
		s.internalError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCategoryForm(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var lookupErr error
	err := s.withVisitor(w, r, func(sess *session.Session) {
		_, lookupErr = sess.SetCategory(name)
	})
	if err != nil {
		s.internalError(w, err)
		return
	}
	if lookupErr != nil {
		http.Error(w, lookupErr.Error(), http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	util.Log.WithError(err).Error("request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}
