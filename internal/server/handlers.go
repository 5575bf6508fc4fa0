package server

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/yacobolo/gradgen"
)

// kindItem is one kind selector button.
type kindItem struct {
	Name   string
	Label  string
	Active bool
}

// noticeView is a notice as the page shows it.
type noticeView struct {
	Message    string
	Level      string
	DurationMS int64
}

// pageData feeds templates/index.html.
type pageData struct {
	Function        template.CSS
	Declaration     string
	Kinds           []kindItem
	AngleApplicable bool
	Angle           int
	Opacity         int
	Stops           []gradgen.ColorStop
	Token           string
	ShareURL        string
	Notice          *noticeView
}

var kindLabels = map[gradgen.Kind]string{
	gradgen.Linear: "Linear",
	gradgen.Radial: "Radial",
	gradgen.Conic:  "Conic",
}

// handleIndex renders the editor for the gradient in the query string.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var started *gradgen.Notice
	editor := gradgen.NewEditor(nil, gradgen.Hooks{
		Notify: func(n gradgen.Notice) { started = &n },
	})
	if _, clearToken := editor.Start(q.Get(gradgen.QueryParam)); clearToken {
		s.logger.Warn("discarding malformed share token", "token", q.Get(gradgen.QueryParam))
		http.Redirect(w, r, "/?"+noticeParam+"="+gradgen.NoticeInvalidURL.Key, http.StatusSeeOther)
		return
	}

	// A notice param, even an empty one, means we arrived from an action
	// and the load notice must not repeat.
	notice := started
	if q.Has(noticeParam) {
		notice = nil
		if n, ok := gradgen.LookupNotice(q.Get(noticeParam)); ok {
			notice = &n
		}
	}

	data, err := s.buildPage(r, editor.State(), notice)
	if err != nil {
		s.logger.Error("build page", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("render page", "err", err)
	}
}

// handleAction applies one editor command to the gradient in the query
// string and redirects to the page for the result.
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var notice gradgen.Notice
	editor := gradgen.NewEditor(nil, gradgen.Hooks{
		Notify: func(n gradgen.Notice) { notice = n },
	})
	if _, clearToken := editor.Start(q.Get(gradgen.QueryParam)); clearToken {
		http.Redirect(w, r, "/?"+noticeParam+"="+gradgen.NoticeInvalidURL.Key, http.StatusSeeOther)
		return
	}
	notice = gradgen.Notice{}

	cmd := gradgen.Command{Op: q.Get("op"), Value: q.Get("value")}
	if raw := q.Get("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "id must be an integer", http.StatusBadRequest)
			return
		}
		cmd.ID = id
	}

	// Rejections the user should see come back as notices; anything else
	// is a malformed request.
	if err := editor.Apply(cmd); err != nil && notice.Key == "" {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := gradgen.Encode(editor.State())
	if err != nil {
		s.logger.Error("encode gradient", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	v := url.Values{}
	v.Set(gradgen.QueryParam, token)
	v.Set(noticeParam, notice.Key)
	http.Redirect(w, r, "/?"+v.Encode(), http.StatusSeeOther)
}

// handleAPI returns the gradient in the query string as JSON.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	state := gradgen.NewState()
	if token := r.URL.Query().Get(gradgen.QueryParam); token != "" {
		decoded, err := gradgen.Decode(token)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		state = decoded
	}

	out, err := gradgen.BuildJSONOutput(state, gradgen.OutputConfig{BaseURL: s.baseURL(r)})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) buildPage(r *http.Request, state *gradgen.State, notice *gradgen.Notice) (pageData, error) {
	rendered := gradgen.Render(state)
	token, err := gradgen.Encode(state)
	if err != nil {
		return pageData{}, err
	}
	shareURL, err := gradgen.ShareURL(s.baseURL(r), state)
	if err != nil {
		return pageData{}, err
	}

	data := pageData{
		// Render only emits rgba() values and integers, never
		// user-controlled text.
		Function:        template.CSS(rendered.Function), // #nosec G203
		Declaration:     rendered.Declaration,
		AngleApplicable: state.AngleApplicable(),
		Angle:           state.Angle(),
		Opacity:         state.Opacity(),
		Stops:           state.SortedStops(),
		Token:           token,
		ShareURL:        shareURL,
	}
	for _, k := range gradgen.Kinds {
		data.Kinds = append(data.Kinds, kindItem{
			Name:   k.String(),
			Label:  kindLabels[k],
			Active: k == state.Kind(),
		})
	}
	if notice != nil {
		data.Notice = &noticeView{
			Message:    notice.Message,
			Level:      notice.Level,
			DurationMS: notice.Duration.Milliseconds(),
		}
	}
	return data, nil
}

// baseURL is the configured public URL or, failing that, the request's
// own origin.
func (s *Server) baseURL(r *http.Request) string {
	if s.cfg.BaseURL != "" {
		return s.cfg.BaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
