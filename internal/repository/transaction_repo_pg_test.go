package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewTransactionRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewTransactionRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewAuditRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewAuditRepository(pool)
	assert.NotNil(t, repo)
}
