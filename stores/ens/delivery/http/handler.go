package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/delivery"
	"github.com/x-xyz/ensgo/domain"
	ensdomain "github.com/x-xyz/ensgo/domain/ens"
	"github.com/x-xyz/ensgo/middleware"
)

type handler struct {
	ens ensdomain.Usecase
}

func New(e *echo.Echo, ens ensdomain.Usecase, mws ...echo.MiddlewareFunc) {
	h := &handler{
		ens,
	}

	// reverse lookups sit outside /ens so that every name stays routable
	r := e.Group("/ens-reverse", mws...)
	r.GET("/:address", h.GetName, middleware.IsValidAddress("address"))

	g := e.Group("/ens", mws...)
	validName := middleware.IsValidName("name")
	g.GET("/:name/address", h.GetAddress, validName)
	g.GET("/:name/text/:key", h.GetText, validName)
	g.GET("/:name/contenthash", h.GetContentHash, validName)
	g.GET("/:name/abi", h.GetABI, validName)
	g.GET("/:name/records", h.GetRecords, validName)
	g.GET("/:name/resolver", h.GetResolver, validName)
}

type namePayload struct {
	Name   string `param:"name" validate:"required"`
	Strict bool   `query:"strict"`
}

func (h *handler) bind(c echo.Context, p interface{}) error {
	if err := c.Bind(p); err != nil {
		return domain.ErrBadParamInput
	}
	if err := c.Validate(p); err != nil {
		return domain.ErrBadParamInput
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (h *handler) GetAddress(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Name   string `param:"name" validate:"required"`
		Coin   string `query:"coin"`
		Strict bool   `query:"strict"`
	}

	p := payload{}
	if err := h.bind(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.ens.GetAddress(ctx, p.Name, p.Coin, p.Strict)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) GetText(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Name   string `param:"name" validate:"required"`
		Key    string `param:"key" validate:"required"`
		Strict bool   `query:"strict"`
	}

	p := payload{}
	if err := h.bind(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.ens.GetText(ctx, p.Name, p.Key, p.Strict)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) GetContentHash(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := namePayload{}
	if err := h.bind(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.ens.GetContentHash(ctx, p.Name, p.Strict)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) GetABI(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := namePayload{}
	if err := h.bind(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.ens.GetABI(ctx, p.Name, p.Strict)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) GetRecords(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Name        string `param:"name" validate:"required"`
		Texts       string `query:"texts"`
		Coins       string `query:"coins"`
		ContentHash bool   `query:"contentHash"`
		ABI         bool   `query:"abi"`
		Strict      bool   `query:"strict"`
	}

	p := payload{}
	if err := h.bind(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.ens.GetRecords(ctx, p.Name, ensdomain.RecordsQuery{
		Texts:       splitList(p.Texts),
		Coins:       splitList(p.Coins),
		ContentHash: p.ContentHash,
		ABI:         p.ABI,
		Strict:      p.Strict,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) GetResolver(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := namePayload{}
	if err := h.bind(c, &p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.ens.GetResolver(ctx, p.Name)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) GetName(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type payload struct {
		Address domain.Address `param:"address" validate:"required,address"`
	}

	p := payload{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}
	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrInvalidAddress)
	}

	res, err := h.ens.GetName(ctx, p.Address)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
