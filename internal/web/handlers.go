package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/webaudit/internal/display"
)

// busyRefreshSeconds is the reload interval of the page while an audit
// is running, for browsers without WebSocket support.
const busyRefreshSeconds = 2

// page is the data rendered by index.html.tmpl.
type page struct {
	URL           string
	Phase         string
	Busy          bool
	Error         string
	Report        *display.ReportView
	Open          int
	Scroll        bool
	RefreshSecond int
}

func (s *Server) handleIndex(c *gin.Context) {
	state := s.lc.State()

	p := page{
		URL:   state.URL(),
		Phase: state.Phase().String(),
		Busy:  state.Busy(),
		Error: state.Message(),
		Open:  -1,
	}
	if p.Busy {
		p.RefreshSecond = busyRefreshSeconds
	}

	if result := state.Result(); result != nil {
		view := display.NewReportView(result)
		p.Report = &view

		s.mu.Lock()
		if idx, ok := s.accordionFor(state.Seq()).Selected(); ok {
			p.Open = idx
		}
		if s.scrollSeq == state.Seq() {
			p.Scroll = true
			s.scrollSeq = 0
		}
		s.mu.Unlock()
	}

	c.HTML(http.StatusOK, "index.html.tmpl", p)
}

func (s *Server) handleAnalyze(c *gin.Context) {
	rawURL := c.PostForm("url")
	sub := s.lc.Start(s.baseCtx, rawURL)
	s.logger.Debug("audit submitted", "seq", sub.Seq())
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleReset(c *gin.Context) {
	s.lc.Reset()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleToggle(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid issue index"})
		return
	}

	state := s.lc.State()
	result := state.Result()
	if result == nil || index >= len(result.Issues) {
		c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
		return
	}

	s.toggleIssue(state.Seq(), index)
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/#issue-%d", index))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.lc.State())
}

func (s *Server) handleEvents(c *gin.Context) {
	s.hub.ServeWS(s.baseCtx, c.Writer, c.Request)
}

// toggleIssue toggles issue index of the result of submission seq. A toggle
// for a result older than the one last rendered is dropped, and one for a
// result that has since been replaced never carries over to the new result.
func (s *Server) toggleIssue(seq uint64, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.accordionSeq {
		return
	}
	s.accordionFor(seq).Toggle(index)
}
