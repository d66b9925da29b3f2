package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/delivery"
	"github.com/x-xyz/ensgo/base/validator"
	"github.com/x-xyz/ensgo/domain"
	ensdomain "github.com/x-xyz/ensgo/domain/ens"
	"github.com/x-xyz/ensgo/domain/ens/mocks"
)

type handlerSuite struct {
	suite.Suite

	e  *echo.Echo
	us *mocks.Usecase
}

func (s *handlerSuite) SetupTest() {
	s.us = mocks.NewUsecase(s.T())
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(goValidator.New())
	addCtx := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	}
	New(s.e, s.us, addCtx)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) get(target string) (int, delivery.JsonResponse) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	resp := delivery.JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func (s *handlerSuite) TestGetAddress() {
	record := &ensdomain.AddressRecord{CoinType: 0, Symbol: "btc", Value: "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"}
	s.us.On("GetAddress", mock.Anything, "nick.eth", "btc", true).Return(record, nil).Once()

	code, resp := s.get("/ens/nick.eth/address?coin=btc&strict=true")
	s.Equal(http.StatusOK, code)
	s.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
	s.Equal(map[string]interface{}{
		"coinType": float64(0),
		"symbol":   "btc",
		"value":    "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa",
	}, resp.Data)
}

func (s *handlerSuite) TestGetText_Absent() {
	s.us.On("GetText", mock.Anything, "nick.eth", "avatar", false).Return(nil, nil).Once()

	code, resp := s.get("/ens/nick.eth/text/avatar")
	s.Equal(http.StatusOK, code)
	s.Equal(delivery.JsonResponseStatusSuccess, resp.Status)
	s.Nil(resp.Data)
}

func (s *handlerSuite) TestGetRecords() {
	query := ensdomain.RecordsQuery{
		Texts:       []string{"url", "avatar"},
		Coins:       []string{"60", "btc"},
		ContentHash: true,
	}
	records := &ensdomain.Records{ResolverAddress: "0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63"}
	s.us.On("GetRecords", mock.Anything, "nick.eth", query).Return(records, nil).Once()

	code, resp := s.get("/ens/nick.eth/records?texts=url,avatar&coins=60,btc&contentHash=true")
	s.Equal(http.StatusOK, code)
	s.Equal(map[string]interface{}{
		"resolverAddress": "0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63",
	}, resp.Data)
}

func (s *handlerSuite) TestGetContentHash_Errors() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid name", err: domain.ErrInvalidName, status: http.StatusBadRequest},
		{name: "bad coin", err: domain.ErrBadParamInput, status: http.StatusBadRequest},
		{name: "rpc", err: errors.New("rpc down"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.us.On("GetContentHash", mock.Anything, "nick.eth", false).Return(nil, tt.err).Once()

			code, resp := s.get("/ens/nick.eth/contenthash")
			s.Equal(tt.status, code)
			s.Equal(delivery.JsonResponseStatusFail, resp.Status)
			s.Equal(tt.err.Error(), resp.Data)
		})
	}
}

func (s *handlerSuite) TestGetResolver() {
	resolver := domain.Address("0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63")
	s.us.On("GetResolver", mock.Anything, "nick.eth").Return(&resolver, nil).Once()

	code, resp := s.get("/ens/nick.eth/resolver")
	s.Equal(http.StatusOK, code)
	s.Equal(string(resolver), resp.Data)
}

func (s *handlerSuite) TestGetResolver_NameReverse() {
	resolver := domain.Address("0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63")
	s.us.On("GetResolver", mock.Anything, "reverse").Return(&resolver, nil).Once()

	code, resp := s.get("/ens/reverse/resolver")
	s.Equal(http.StatusOK, code)
	s.Equal(string(resolver), resp.Data)
}

func (s *handlerSuite) TestGetName() {
	address := domain.Address("0xb8c2C29ee19D8307cb7255e1Cd9CbDE883A267d5")
	s.us.On("GetName", mock.Anything, address).Return(&ensdomain.NameResult{Name: "nick.eth", Match: true}, nil).Once()

	code, resp := s.get("/ens-reverse/" + string(address))
	s.Equal(http.StatusOK, code)
	s.Equal("nick.eth", resp.Data.(map[string]interface{})["name"])

	code, resp = s.get("/ens-reverse/0x1234")
	s.Equal(http.StatusBadRequest, code)
	s.Equal(domain.ErrInvalidAddress.Error(), resp.Data)
}

func (s *handlerSuite) TestSplitList() {
	s.Nil(splitList(""))
	s.Equal([]string{"a", "b"}, splitList("a, b,,"))
}
