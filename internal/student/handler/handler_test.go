package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"unibus/internal/enrichment"
	"unibus/internal/student/service"
	"unibus/internal/student/service/mocks"
	"unibus/internal/student/store"
)

type HandlerSuite struct {
	suite.Suite
	admitter *mocks.MockAdmitter
	router   http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.admitter = mocks.NewMockAdmitter(gomock.NewController(s.T()))
	svc := service.New(store.NewInMemory(), s.admitter, service.WithLogger(logger))

	r := chi.NewRouter()
	New(svc, logger).Register(r)
	s.router = r
}

func (s *HandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) admitRecife() {
	s.admitter.EXPECT().AdmitStudent(gomock.Any(), gomock.Any()).
		Return(&enrichment.Admission{Locality: "Recife", RegionCode: "2611606", PostalCode: "50740-560"}, nil)
}

const anaBody = `{"name": " Ana Souza ", "email": "Ana@Aluno.UFPE.br", "cep": "50740-560"}`

func (s *HandlerSuite) TestCreate() {
	s.Run("201 with enriched student", func() {
		s.admitRecife()

		rec := s.do(http.MethodPost, "/students", anaBody)

		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		var got StudentResponse
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal("Ana Souza", got.Name)
		s.Equal("ana@aluno.ufpe.br", got.Email)
		s.Equal("Recife", got.City)
		s.Equal("2611606", got.CityIBGECode)
		s.Equal("50740-560", got.CEP)
	})

	s.Run("409 on duplicate email", func() {
		s.admitRecife()

		rec := s.do(http.MethodPost, "/students", anaBody)

		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), `"error":"conflict"`)
	})

	s.Run("400 invalid_postal_code", func() {
		s.admitter.EXPECT().AdmitStudent(gomock.Any(), gomock.Any()).
			Return(nil, &enrichment.AdmissionError{Kind: enrichment.KindInvalidPostalCode, Reason: "postal code not found"})

		rec := s.do(http.MethodPost, "/students", `{"name":"Bia","email":"bia@aluno.ufpe.br","cep":"00000-000"}`)

		s.Equal(http.StatusBadRequest, rec.Code)
		s.JSONEq(`{"error":"invalid_postal_code","error_description":"postal code not found"}`, rec.Body.String())
	})

	s.Run("422 not_eligible", func() {
		s.admitter.EXPECT().AdmitStudent(gomock.Any(), gomock.Any()).
			Return(nil, &enrichment.AdmissionError{Kind: enrichment.KindNotEligible, Reason: "email is not institutional"})

		rec := s.do(http.MethodPost, "/students", `{"name":"Bob","email":"bob@gmail.com","cep":"50740560"}`)

		s.Equal(http.StatusUnprocessableEntity, rec.Code)
		s.JSONEq(`{"error":"not_eligible","error_description":"email is not institutional"}`, rec.Body.String())
	})

	s.Run("validation errors never reach admission", func() {
		s.admitter.EXPECT().AdmitStudent(gomock.Any(), gomock.Any()).Times(0)

		cases := map[string]string{
			"malformed cep": `{"name":"Ana","email":"ana@aluno.ufpe.br","cep":"5074-0560"}`,
			"bad email":     `{"name":"Ana","email":"not-an-email","cep":"50740560"}`,
			"blank name":    `{"name":"   ","email":"ana@aluno.ufpe.br","cep":"50740560"}`,
			"not json":      `{`,
		}
		for name, body := range cases {
			rec := s.do(http.MethodPost, "/students", body)
			s.Equal(http.StatusBadRequest, rec.Code, name)
		}
	})
}

func (s *HandlerSuite) TestGetUpdateDelete() {
	s.admitRecife()
	rec := s.do(http.MethodPost, "/students", anaBody)
	s.Require().Equal(http.StatusCreated, rec.Code)
	var created StudentResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/students/" + strconv.FormatInt(created.ID, 10)

	s.Equal(http.StatusOK, s.do(http.MethodGet, path, "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/students/999", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/students/abc", "").Code)

	s.admitRecife()
	rec = s.do(http.MethodPut, path, `{"name":"Ana S.","email":"ana@aluno.ufpe.br","cep":"50740560"}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"name":"Ana S."`)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, path, "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, path, "").Code)
}

func (s *HandlerSuite) TestList() {
	rec := s.do(http.MethodGet, "/students", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/students?limit=0", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/students?skip=-1", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/students?limit=1001", "").Code)
}
