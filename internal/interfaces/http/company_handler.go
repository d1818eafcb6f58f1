package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/application/policy"
	"github.com/upzy-app/hub-api/internal/application/usecase"
	"github.com/upzy-app/hub-api/internal/domain"
)

// CompanyHandler trata as requisições HTTP do recurso Company e da equipe.
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler constrói o handler injetando o caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// requirePermission resolve o vínculo do usuário da sessão com a empresa e
// checa a matriz de permissões. Devolve o erro HTTP pronto, ou nil se pode.
func (h *CompanyHandler) requirePermission(c *fiber.Ctx, companyID string, action policy.Action) error {
	m, err := h.uc.GetMembership(c.Context(), GetUserID(c), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !policy.CanPerform(m, action) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sem permissão para esta operação"})
	}
	return nil
}

// Create godoc
// @Summary      Criar empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Dados da empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados da empresa inválidos"})
		}
		if errors.Is(err, domain.ErrSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SLUG_TAKEN", Message: "slug já está em uso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CheckSlug godoc
// @Summary      Verificar disponibilidade de slug
// @Tags         companies
// @Produce      json
// @Param        name  query  string  true  "Nome da empresa"
// @Success      200   {object}  dto.SlugAvailabilityResponse
// @Router       /api/companies/slug-availability [get]
func (h *CompanyHandler) CheckSlug(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name é obrigatório"})
	}
	out, err := h.uc.CheckSlugAvailability(c.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nome não gera um slug válido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter empresa por ID
// @Tags         companies
// @Produce      json
// @Param        id   path  string  true  "ID da empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Param        limit   query  int  false  "Tamanho da página"
// @Param        offset  query  int  false  "Deslocamento"
// @Success      200  {object}  dto.CompanyListResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateBranding godoc
// @Summary      Atualizar branding da empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID da empresa"
// @Param        body  body  dto.BrandingDTO  true  "Branding"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/branding [put]
func (h *CompanyHandler) UpdateBranding(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.requirePermission(c, id, policy.ActionManageSettings); err != nil {
		return err
	}
	var in dto.BrandingDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	out, err := h.uc.UpdateBranding(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa não encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListMembers godoc
// @Summary      Listar membros da empresa
// @Tags         team
// @Produce      json
// @Param        id  path  string  true  "ID da empresa"
// @Success      200  {array}  dto.MemberResponse
// @Router       /api/companies/{id}/members [get]
func (h *CompanyHandler) ListMembers(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.requirePermission(c, id, policy.ActionViewCompany); err != nil {
		return err
	}
	out, err := h.uc.ListMembers(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddMember godoc
// @Summary      Adicionar membro à equipe
// @Tags         team
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID da empresa"
// @Param        body  body  dto.AddMemberRequest  true  "user_id e papel"
// @Success      201   {object}  dto.MemberResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/members [post]
func (h *CompanyHandler) AddMember(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.requirePermission(c, id, policy.ActionManageTeam); err != nil {
		return err
	}
	var in dto.AddMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	out, err := h.uc.AddMember(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "o usuário já é membro da empresa"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuário ou empresa não encontrados"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "papel inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateMemberRole godoc
// @Summary      Trocar papel de um membro
// @Tags         team
// @Accept       json
// @Produce      json
// @Param        id      path  string                       true  "ID da empresa"
// @Param        userId  path  string                       true  "ID do usuário"
// @Param        body    body  dto.UpdateMemberRoleRequest  true  "novo papel"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/members/{userId} [put]
func (h *CompanyHandler) UpdateMemberRole(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Params("userId")
	if err := h.requirePermission(c, id, policy.ActionManageTeam); err != nil {
		return err
	}
	var in dto.UpdateMemberRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	if err := h.uc.UpdateMemberRole(c.Context(), id, userID, in); err != nil {
		if errors.Is(err, domain.ErrOwnerImmutable) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OWNER_IMMUTABLE", Message: "o papel do proprietário não pode ser alterado"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vínculo não encontrado"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "papel inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveMember godoc
// @Summary      Remover membro da equipe
// @Tags         team
// @Param        id      path  string  true  "ID da empresa"
// @Param        userId  path  string  true  "ID do usuário"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/members/{userId} [delete]
func (h *CompanyHandler) RemoveMember(c *fiber.Ctx) error {
	id := c.Params("id")
	userID := c.Params("userId")
	if err := h.requirePermission(c, id, policy.ActionManageTeam); err != nil {
		return err
	}
	if err := h.uc.RemoveMember(c.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrOwnerImmutable) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "OWNER_IMMUTABLE", Message: "o proprietário não pode ser removido"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vínculo não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
