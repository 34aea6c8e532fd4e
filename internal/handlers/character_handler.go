package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"starfolk-client/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxSearchLength bounds the search parameter of the character list.
const maxSearchLength = 100

// Characters serves the development catalog from a character table.
// Errors use the {"detail": ...} body of the remote data service.
type Characters struct {
	DB *gorm.DB
}

// ListCharacters returns every character, or those whose name contains the
// search parameter, case-insensitively.
func (h *Characters) ListCharacters(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	if len(search) > maxSearchLength {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "search must be at most 100 characters"})
		return
	}

	query := h.DB.WithContext(c.Request.Context()).Model(&models.Character{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	characters := []models.Character{}
	if err := query.Order("id asc").Find(&characters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch characters"})
		return
	}
	c.JSON(http.StatusOK, characters)
}

// GetCharacter returns one character by id.
func (h *Characters) GetCharacter(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Character ID must be an integer"})
		return
	}

	var character models.Character
	result := h.DB.WithContext(c.Request.Context()).Where("id = ?", id).First(&character)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Character not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to fetch character"})
		}
		return
	}
	c.JSON(http.StatusOK, character)
}
