package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const themeKey = "theme"

// SettingsHandler keeps per-visitor preferences in the session instead of
// ambient globals.
type SettingsHandler struct{}

func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

func (h *SettingsHandler) GetTheme(c *gin.Context) {
	session := sessions.Default(c)
	theme, _ := session.Get(themeKey).(string)
	if theme == "" {
		theme = "dark"
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

func (h *SettingsHandler) SetTheme(c *gin.Context) {
	var in struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || (in.Theme != "dark" && in.Theme != "light") {
		BadRequest(c, "theme harus dark atau light")
		return
	}

	session := sessions.Default(c)
	session.Set(themeKey, in.Theme)
	if err := session.Save(); err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": in.Theme})
}
