// Package gatewaytest provides an in-memory stand-in for the remote todo
// collection, served by a gin engine over httptest. It mirrors the reference
// service closely enough for client tests: case-insensitive search over title
// and description, sort by due_date or title, skip/limit paging with a default
// limit of 10, a null results array when nothing matches, and message-only
// acknowledgments for update and delete. Like the reference service, update
// and delete acknowledge ids that match nothing.
package gatewaytest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/idilsaglam/tada/internal/model"
)

const (
	basePath     = "/todos"
	DefaultLimit = 10
)

// Request is one call observed by the server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   string
}

// Server is the fake collection.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	todos    []model.Todo
	nextID   int
	limit    int
	failures map[string][]int
	requests []Request
}

// New starts a server. Callers must Close it.
func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{limit: DefaultLimit, failures: map[string][]int{}}

	engine := gin.New()
	engine.Use(s.record)
	todos := engine.Group(basePath)
	{
		todos.POST("", s.inject("create"), s.create)
		todos.GET("", s.inject("list"), s.list)
		todos.GET("/:id", s.inject("get"), s.get)
		todos.PUT("/:id", s.inject("update"), s.update)
		todos.DELETE("/:id", s.inject("delete"), s.remove)
	}
	s.Server = httptest.NewServer(engine)
	return s
}

// BaseURL is the collection URL to hand to gateway.NewClient.
func (s *Server) BaseURL() string { return s.Server.URL + basePath }

// SetLimit changes the page size the server chooses.
func (s *Server) SetLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limit = n
}

// Seed inserts todos, assigning ids to those without one.
func (s *Server) Seed(todos ...model.Todo) []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if t.ID == "" {
			t.ID = s.newID()
		}
		s.todos = append(s.todos, t)
		out = append(out, t)
	}
	return out
}

// SeedN inserts n todos titled "Todo 01".."Todo nn" due on consecutive days.
func (s *Server) SeedN(n int) []model.Todo {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	todos := make([]model.Todo, 0, n)
	for i := 1; i <= n; i++ {
		todos = append(todos, model.Todo{
			Title:       "Todo " + pad2(i),
			Description: "seeded",
			DueDate:     base.AddDate(0, 0, i),
		})
	}
	return s.Seed(todos...)
}

// Todos returns a snapshot of the stored items in insertion order.
func (s *Server) Todos() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Todo(nil), s.todos...)
}

// FailNext makes the next call to op ("list", "get", "create", "update", "delete")
// answer with status.
func (s *Server) FailNext(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = append(s.failures[op], status)
}

// Requests returns every request seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) record(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		body, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
	}
	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Query:  c.Request.URL.Query(),
		Body:   string(body),
	})
	s.mu.Unlock()
	c.Next()
}

// inject answers with the next queued failure status for op, if any.
func (s *Server) inject(op string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		q := s.failures[op]
		if len(q) == 0 {
			s.mu.Unlock()
			c.Next()
			return
		}
		status := q[0]
		s.failures[op] = q[1:]
		s.mu.Unlock()
		c.AbortWithStatusJSON(status, gin.H{"error": "injected failure"})
	}
}

func (s *Server) list(c *gin.Context) {
	page := atoiDefault(c.Query("page"), 1)
	sortBy := c.DefaultQuery("sortBy", string(model.SortByDueDate))
	order := c.DefaultQuery("sortOrder", string(model.Asc))
	search := strings.ToLower(c.Query("q"))

	s.mu.Lock()
	limit := atoiDefault(c.Query("limit"), s.limit)
	var matched []model.Todo
	for _, t := range s.todos {
		if search == "" ||
			strings.Contains(strings.ToLower(t.Title), search) ||
			strings.Contains(strings.ToLower(t.Description), search) {
			matched = append(matched, t)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var less, greater bool
		if sortBy == string(model.SortByTitle) {
			less, greater = a.Title < b.Title, a.Title > b.Title
		} else {
			less, greater = a.DueDate.Before(b.DueDate), a.DueDate.After(b.DueDate)
		}
		if order == string(model.Desc) {
			return greater
		}
		return less
	})

	var results []model.Todo
	skip := (page - 1) * limit
	if skip >= 0 && skip < len(matched) {
		end := min(skip+limit, len(matched))
		results = matched[skip:end]
	}

	c.JSON(http.StatusOK, gin.H{
		"page":    page,
		"limit":   limit,
		"count":   len(matched),
		"results": results,
	})
}

func (s *Server) get(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.todos {
		if t.ID == id {
			c.JSON(http.StatusOK, t)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "ToDo not found"})
}

func (s *Server) create(c *gin.Context) {
	var t model.Todo
	if err := c.ShouldBindJSON(&t); err != nil || strings.TrimSpace(t.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	s.mu.Lock()
	t.ID = s.newID()
	s.todos = append(s.todos, t)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, t)
}

func (s *Server) update(c *gin.Context) {
	var in model.Todo
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Title = in.Title
			s.todos[i].Description = in.Description
			s.todos[i].DueDate = in.DueDate
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "ToDo updated"})
}

func (s *Server) remove(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "ToDo deleted"})
}

// newID must be called with mu held.
func (s *Server) newID() string {
	s.nextID++
	return "todo-" + strconv.Itoa(s.nextID)
}

func atoiDefault(s string, d int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return d
	}
	return n
}

func pad2(i int) string {
	if i < 10 {
		return "0" + strconv.Itoa(i)
	}
	return strconv.Itoa(i)
}
