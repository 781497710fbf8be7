//go:build integration

package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	audit "unibus/pkg/platform/audit"
	"unibus/pkg/platform/audit/store/postgres"
	"unibus/pkg/requestcontext"
	"unibus/pkg/testutil/containers"
)

type AuditStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *postgres.Store
}

func TestAuditStoreSuite(t *testing.T) {
	suite.Run(t, new(AuditStoreSuite))
}

func (s *AuditStoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = postgres.New(s.pg.DB)
}

func (s *AuditStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "audit_entries"))
}

func (s *AuditStoreSuite) TestAppendAndListInOrder() {
	ctx := requestcontext.WithRequestID(context.Background(), "req-1")

	postal := audit.NewEntry(ctx, audit.CategoryPostalCheck, map[string]string{"cep": "50740-560"}, true, "Recife")
	elig := audit.NewEntry(ctx, audit.CategoryEligibilityCheck, map[string]string{"email": "a@aluno.ufpe.br"}, false, "enrollment inactive")
	s.Require().NoError(s.store.Append(ctx, postal))
	s.Require().NoError(s.store.Append(ctx, elig))

	entries, err := s.store.List(ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(postal.ID, entries[0].ID)
	s.Equal("50740-560", entries[0].Subject["cep"])
	s.Equal("req-1", entries[0].RequestID)
	s.Equal(audit.CategoryEligibilityCheck, entries[1].Category)
	s.False(entries[1].Outcome)
	s.Equal("enrollment inactive", entries[1].Detail)
}

func (s *AuditStoreSuite) TestAppendIsIdempotentByID() {
	ctx := context.Background()
	e := audit.NewEntry(ctx, audit.CategoryPostalCheck, nil, false, "postal code not found")

	s.Require().NoError(s.store.Append(ctx, e))
	s.Require().NoError(s.store.Append(ctx, e))

	entries, err := s.store.List(ctx, 0)
	s.Require().NoError(err)
	s.Len(entries, 1)
	s.Empty(entries[0].RequestID)
}

func (s *AuditStoreSuite) TestListLimit() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.Require().NoError(s.store.Append(ctx, audit.NewEntry(ctx, audit.CategoryPostalCheck, nil, true, "ok")))
	}
	entries, err := s.store.List(ctx, 2)
	s.Require().NoError(err)
	s.Len(entries, 2)
}
