package database_test

import (
	"testing"

	"autocare/internal/database"
	"autocare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "dsn")
	assert.Error(t, err)
}

func TestOpenMemoryIsIsolated(t *testing.T) {
	first, err := database.OpenMemory()
	require.NoError(t, err)
	second, err := database.OpenMemory()
	require.NoError(t, err)

	require.NoError(t, first.Create(&models.ProductCategory{Name: "Oils"}).Error)

	var count int64
	require.NoError(t, second.Model(&models.ProductCategory{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, first.Model(&models.ProductCategory{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
