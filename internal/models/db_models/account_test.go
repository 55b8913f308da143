package db_models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestAccountEmailUniqueAmongLiveRows(t *testing.T) {
	s, err := schema.Parse(&Account{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	idx := s.LookIndex("idx_accounts_email_live")
	require.NotNil(t, idx)
	assert.Equal(t, "UNIQUE", idx.Class)
	assert.Equal(t, "deleted_at IS NULL", idx.Where)
	require.Len(t, idx.Fields, 1)
	assert.Equal(t, "email", idx.Fields[0].DBName)

	assert.Nil(t, s.LookIndex("idx_accounts_email"))
}
