package handlers

import (
	"math"
	"net/http"
	"strconv"

	"tintaku/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type StoryHandler struct {
	cerpen *services.CerpenService
	engage *services.EngagementService
}

func NewStoryHandler(cerpen *services.CerpenService, engage *services.EngagementService) *StoryHandler {
	return &StoryHandler{cerpen: cerpen, engage: engage}
}

// List serves the browsable collection: ?q=, ?category=, ?sort=newest|alpha,
// ?page=.
func (h *StoryHandler) List(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	items, total, err := h.cerpen.List(c.Request.Context(), services.ListOptions{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		Page:     page,
	})
	if err != nil {
		JSONError(c, err)
		return
	}

	totalPages := int(math.Ceil(float64(total) / float64(services.DefaultPerPage)))
	if totalPages == 0 {
		totalPages = 1
	}
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total":       total,
		"page":        page,
		"total_pages": totalPages,
	})
}

func (h *StoryHandler) Detail(c *gin.Context) {
	item, err := h.cerpen.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		JSONError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cerpen tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StoryHandler) Random(c *gin.Context) {
	item, err := h.cerpen.Random(c.Request.Context())
	if err != nil {
		JSONError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cerpen tidak ditemukan"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StoryHandler) Categories(c *gin.Context) {
	cats, err := h.cerpen.Categories(c.Request.Context())
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *StoryHandler) ListComments(c *gin.Context) {
	comments, err := h.engage.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

type commentInput struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// CreateComment appends a reader comment. On a storage failure the submitted
// entry is echoed back so the client can keep the input populated for retry.
func (h *StoryHandler) CreateComment(c *gin.Context) {
	var in commentInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Text == "" {
		BadRequest(c, "komentar tidak boleh kosong")
		return
	}

	entry, err := h.engage.AddComment(c.Request.Context(), c.Param("id"), in.Name, in.Text)
	if err != nil {
		c.JSON(errStatus(err), gin.H{"error": err.Error(), "entry": entry})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func likedKey(id string) string {
	return "liked_" + id
}

func (h *StoryHandler) GetLikes(c *gin.Context) {
	id := c.Param("id")
	session := sessions.Default(c)
	liked, _ := session.Get(likedKey(id)).(bool)

	counter, err := h.engage.Likes(c.Request.Context(), id, liked)
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, counter)
}

// ToggleLike flips this device's like for a story. The flag lives in the
// cookie session; the shared count lives in the side table.
func (h *StoryHandler) ToggleLike(c *gin.Context) {
	id := c.Param("id")
	session := sessions.Default(c)
	liked, _ := session.Get(likedKey(id)).(bool)

	counter, err := h.engage.ToggleLike(c.Request.Context(), id, liked)
	if err != nil {
		JSONError(c, err)
		return
	}

	session.Set(likedKey(id), counter.Liked)
	if err := session.Save(); err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, counter)
}
