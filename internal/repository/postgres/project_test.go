package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProjectRepository(t *testing.T) {
	db := &Connection{}
	repo := NewProjectRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}
