package admin

import (
	"net/http"
	"time"

	"hearthside_back_end/internal/database"
	"hearthside_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

//
// 🔵 GET /api/admin/users
//
func GetAllUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load users"})
		return
	}

	iter := session.Query(`SELECT user_id, email, full_name, phone, role, address_line1, address_line2,
			city, state, zip_code, country, latitude, longitude, created_at, updated_at FROM profiles`).
		WithContext(c.Request.Context()).Iter()

	var users []models.Profile
	var u models.Profile
	for iter.Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Role, &u.AddressLine1, &u.AddressLine2,
		&u.City, &u.State, &u.ZipCode, &u.Country, &u.Latitude, &u.Longitude, &u.CreatedAt, &u.UpdatedAt) {
		users = append(users, u)
		u = models.Profile{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

//
// 🟡 PUT /api/admin/users/:id/role
//
func UpdateUserRole(c *gin.Context) {
	userID := c.Param("id")

	var input struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Role != models.RoleCustomer && input.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be customer or admin"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update role"})
		return
	}

	now := time.Now().UTC()
	if err := session.Query(`UPDATE profiles SET role = ?, updated_at = ? WHERE user_id = ?`,
		input.Role, now, userID).WithContext(c.Request.Context()).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user_id": userID, "role": input.Role})
}
