package main

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"fintrack/models"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageSize = 5 * 1024 * 1024

// userView is the public shape of a user; the hashed secret never leaves the
// server.
type userView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
}

func viewOf(u *models.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, ProfileImage: u.ProfileImage}
}

func (s *server) registerHandler(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := registerUser(c.Request.Context(), s.users, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		internalError(c, "failed to generate token", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": viewOf(user), "token": tok})
}

func (s *server) loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := authenticateUser(c.Request.Context(), s.users, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		internalError(c, "login failed", err)
		return
	}
	tok, err := s.tokens.Issue(user.ID)
	if err != nil {
		internalError(c, "failed to generate token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": viewOf(user), "token": tok})
}

func (s *server) userHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": viewOf(currentUser(c))})
}

// profileImageHandler accepts a multipart image, bounds it to 512x512 and
// stores it under the upload dir with a random name. Only the resulting
// reference is kept on the user.
func (s *server) profileImageHandler(c *gin.Context) {
	user := currentUser(c)
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image uploaded"})
		return
	}
	if file.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image too large (max 5MB)"})
		return
	}
	src, err := file.Open()
	if err != nil {
		internalError(c, "failed to read image", err)
		return
	}
	defer src.Close()
	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image format"})
		return
	}
	img = imaging.Fit(img, 512, 512, imaging.Lanczos)

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		internalError(c, "failed to store image", err)
		return
	}
	name := uuid.NewString() + ".jpg"
	if err := imaging.Save(img, filepath.Join(s.uploadDir, name), imaging.JPEGQuality(90)); err != nil {
		internalError(c, "failed to store image", err)
		return
	}

	ref := filepath.ToSlash(filepath.Join(filepath.Base(s.uploadDir), name))
	updated, err := s.users.UpdateProfileImage(c.Request.Context(), user.ID, ref)
	if err != nil {
		internalError(c, "failed to update profile image", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profileImage": updated.ProfileImage})
}
