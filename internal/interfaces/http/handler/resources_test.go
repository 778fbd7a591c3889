package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/orgdesk/backend/internal/application/catalog"
	appidentity "github.com/orgdesk/backend/internal/application/identity"
	appjob "github.com/orgdesk/backend/internal/application/job"
	apptrade "github.com/orgdesk/backend/internal/application/trade"
	"github.com/orgdesk/backend/internal/domain/catalog"
	"github.com/orgdesk/backend/internal/domain/identity"
	"github.com/orgdesk/backend/internal/domain/job"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocationHandler(t *testing.T) {
	admin := newTestUser(identity.RoleAdmin)
	repo := new(MockCompanyRepository[identity.Location])
	h := NewLocationHandler(NewBaseHandler(nil), appidentity.NewLocationService(repo))

	engine := newEngine(admin)
	engine.GET("/locations", h.List)
	engine.GET("/locations/count", h.Count)
	engine.GET("/locations/:id", h.Get)
	engine.POST("/locations", h.Create)
	engine.DELETE("/locations/:id", h.Delete)

	t.Run("list reports next when an extra row came back", func(t *testing.T) {
		rows := make([]identity.Location, 3)
		for i := range rows {
			rows[i] = identity.Location{BaseEntity: shared.NewBaseEntity(), CompanyID: admin.CompanyID, Name: "HQ"}
		}
		repo.On("FindAll", mock.Anything, admin.CompanyID, shared.NewPageRequest(0, 2)).Return(rows, nil).Once()

		w := perform(engine, http.MethodGet, "/locations?limit=2", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Len(t, body["data"], 2)
		assert.Equal(t, true, body["next"])
	})

	t.Run("count", func(t *testing.T) {
		repo.On("Count", mock.Anything, admin.CompanyID).Return(int64(4), nil).Once()

		w := perform(engine, http.MethodGet, "/locations/count", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 4, decode(t, w)["count"])
	})

	t.Run("create answers with the new id", func(t *testing.T) {
		repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.Location")).Return(nil).Once()

		w := perform(engine, http.MethodPost, "/locations", gin.H{"name": "Berlin", "city": "Berlin"})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Regexp(t, `^Location [0-9a-f-]{36} created successfully$`, decode(t, w)["message"])
	})

	t.Run("create without a name is a validation error", func(t *testing.T) {
		w := perform(engine, http.MethodPost, "/locations", gin.H{"city": "Berlin"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, w)["code"])
	})

	t.Run("unknown location", func(t *testing.T) {
		id := uuid.New()
		repo.On("FindByID", mock.Anything, admin.CompanyID, id).Return(nil, shared.NewNotFoundError("Location")).Once()

		w := perform(engine, http.MethodGet, "/locations/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Location not found", decode(t, w)["message"])
	})

	t.Run("delete", func(t *testing.T) {
		id := uuid.New()
		repo.On("SoftDelete", mock.Anything, admin.CompanyID, id).Return(nil).Once()

		w := perform(engine, http.MethodDelete, "/locations/"+id.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Location "+id.String()+" deleted successfully", decode(t, w)["message"])
	})

	repo.AssertExpectations(t)
}

func TestCollectiveHandler_AddMember(t *testing.T) {
	admin := newTestUser(identity.RoleAdmin)
	team := &identity.Team{BaseEntity: shared.NewBaseEntity(), CompanyID: admin.CompanyID, Name: "Platform"}
	member := newTestUser(identity.RoleEmployee)

	setup := func(existing *identity.Membership) (*gin.Engine, *historyRecorder) {
		teams := new(MockCompanyRepository[identity.Team])
		users := new(MockUserRepository)
		memberships := new(MockMembershipRepository)
		history := &historyRecorder{}

		teams.On("FindByID", mock.Anything, admin.CompanyID, team.ID).Return(team, nil)
		users.On("FindByID", mock.Anything, admin.CompanyID, member.ID).Return(member, nil)
		if existing == nil {
			memberships.On("Find", mock.Anything, team.ID, member.ID).Return(nil, shared.NewNotFoundError("Team member"))
		} else {
			memberships.On("Find", mock.Anything, team.ID, member.ID).Return(existing, nil)
		}
		memberships.On("Save", mock.Anything, mock.Anything).Return(nil)

		h := NewCollectiveHandler(NewBaseHandler(nil), appidentity.NewTeamService(teams, users, memberships, history))
		engine := newEngine(admin)
		engine.POST("/teams/:id/members", h.AddMember)
		return engine, history
	}

	t.Run("new membership is created", func(t *testing.T) {
		engine, history := setup(nil)
		w := perform(engine, http.MethodPost, "/teams/"+team.ID.String()+"/members", gin.H{"memberId": member.ID})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Team member added", decode(t, w)["message"])
		assert.Len(t, history.entries, 1)
	})

	t.Run("inactive membership is reactivated", func(t *testing.T) {
		existing := identity.NewMembership(team.ID, member.ID)
		existing.Deactivate()
		engine, _ := setup(existing)

		w := perform(engine, http.MethodPost, "/teams/"+team.ID.String()+"/members", gin.H{"memberId": member.ID})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Team member reactivated", decode(t, w)["message"])
	})

	t.Run("active membership is left alone", func(t *testing.T) {
		engine, history := setup(identity.NewMembership(team.ID, member.ID))

		w := perform(engine, http.MethodPost, "/teams/"+team.ID.String()+"/members", gin.H{"memberId": member.ID})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Team member already active", decode(t, w)["message"])
		assert.Empty(t, history.entries)
	})

	t.Run("invalid team id", func(t *testing.T) {
		engine, _ := setup(nil)
		w := perform(engine, http.MethodPost, "/teams/7/members", gin.H{"memberId": member.ID})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid team id: 7", decode(t, w)["message"])
	})
}

func TestProductHandler_Projection(t *testing.T) {
	storefront := uuid.New()
	cost := decimal.RequireFromString("4.20")
	product := catalog.Product{
		BaseEntity:    shared.NewBaseEntity(),
		CompanyID:     storefront,
		Name:          "Desk lamp",
		Price:         decimal.RequireFromString("19.99"),
		Quantity:      3,
		IsOwnedByShop: true,
		PurchaseCost:  &cost,
		Images:        []string{},
	}

	t.Run("anonymous readers use the storefront company and see the public view", func(t *testing.T) {
		repo := new(MockProductRepository)
		repo.On("FindAll", mock.Anything, storefront, catalog.ProductFilter{Name: "lamp"}, shared.SkipTake(5, 2)).
			Return([]catalog.Product{product}, nil).Once()
		h := NewProductHandler(NewBaseHandler(nil), appcatalog.NewProductService(repo, nil), storefront)

		engine := newEngine(nil)
		engine.GET("/products", h.List)
		w := perform(engine, http.MethodGet, "/products?name=lamp&skip=5&take=2", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		data := body["data"].([]any)
		require.Len(t, data, 1)
		item := data[0].(map[string]any)
		assert.Equal(t, "Desk lamp", item["name"])
		assert.NotContains(t, item, "purchaseCost")
		assert.NotContains(t, item, "isOwnedByShop")
		repo.AssertExpectations(t)
	})

	t.Run("admins see the sourcing fields", func(t *testing.T) {
		admin := newTestUser(identity.RoleAdmin)
		repo := new(MockProductRepository)
		repo.On("FindByID", mock.Anything, admin.CompanyID, product.ID).Return(&product, nil).Once()
		h := NewProductHandler(NewBaseHandler(nil), appcatalog.NewProductService(repo, nil), storefront)

		engine := newEngine(admin)
		engine.GET("/products/:id", h.Get)
		w := perform(engine, http.MethodGet, "/products/"+product.ID.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, "4.2", body["purchaseCost"])
		assert.Equal(t, true, body["isOwnedByShop"])
	})

	t.Run("malformed supplier filter", func(t *testing.T) {
		h := NewProductHandler(NewBaseHandler(nil), appcatalog.NewProductService(new(MockProductRepository), nil), storefront)
		engine := newEngine(nil)
		engine.GET("/products", h.List)

		w := perform(engine, http.MethodGet, "/products?supplierId=x", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid supplier id: x", decode(t, w)["message"])
	})
}

func TestSaleHandler(t *testing.T) {
	customer := newTestUser(identity.RoleUser)
	line, err := trade.NewLine(uuid.New(), 2, decimal.NewFromInt(5))
	require.NoError(t, err)

	t.Run("another customer's sale is forbidden", func(t *testing.T) {
		sale, err := trade.NewSale(customer.CompanyID, uuid.New(), decimal.Zero, []trade.Line{line})
		require.NoError(t, err)
		repo := new(MockSaleRepository)
		repo.On("FindByID", mock.Anything, customer.CompanyID, sale.ID).Return(sale, nil)

		h := NewSaleHandler(NewBaseHandler(nil), apptrade.NewSaleService(repo))
		engine := newEngine(customer)
		engine.GET("/sales/:id", h.Get)

		w := perform(engine, http.MethodGet, "/sales/"+sale.ID.String(), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("customers buy for themselves", func(t *testing.T) {
		repo := new(MockSaleRepository)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(s *trade.Sale) bool {
			return s.CustomerID == customer.ID && s.Status == trade.StatusPending
		})).Return(nil).Once()

		h := NewSaleHandler(NewBaseHandler(nil), apptrade.NewSaleService(repo))
		engine := newEngine(customer)
		engine.POST("/sales", h.Create)

		w := perform(engine, http.MethodPost, "/sales", gin.H{
			"customerId": uuid.New(),
			"status":     "PAID",
			"details":    []gin.H{{"productId": uuid.New(), "quantity": 1, "soldPrice": "10"}},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("history is scoped to the caller", func(t *testing.T) {
		repo := new(MockSaleRepository)
		repo.On("FindAll", mock.Anything, customer.CompanyID, trade.SaleFilter{CustomerID: &customer.ID}, shared.SkipTake(0, 0)).
			Return([]trade.Sale{}, nil).Once()

		h := NewSaleHandler(NewBaseHandler(nil), apptrade.NewSaleService(repo))
		engine := newEngine(customer)
		engine.GET("/sales/history", h.History)

		w := perform(engine, http.MethodGet, "/sales/history", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decode(t, w)["next"])
		repo.AssertExpectations(t)
	})
}

func TestJobHandler(t *testing.T) {
	admin := newTestUser(identity.RoleAdmin)

	t.Run("requeue a failed job", func(t *testing.T) {
		j, err := job.NewLoginEmail("ada@example.com", "tok-1234567890")
		require.NoError(t, err)
		j.Fail("Invalid payload")

		repo := new(MockJobRepository)
		repo.On("FindByID", mock.Anything, j.ID).Return(j, nil)
		repo.On("Transition", mock.Anything, j, job.StatusFailed).Return(true, nil)

		h := NewJobHandler(NewBaseHandler(nil), appjob.NewAdminService(repo, zap.NewNop()))
		engine := newEngine(admin)
		engine.POST("/jobs/:id/requeue", h.Requeue)

		w := perform(engine, http.MethodPost, "/jobs/"+j.ID.String()+"/requeue", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "PENDING", body["status"])
		assert.EqualValues(t, 0, body["failureCount"])
	})

	t.Run("only failed jobs can be requeued", func(t *testing.T) {
		j, err := job.NewLoginEmail("ada@example.com", "tok-1234567890")
		require.NoError(t, err)

		repo := new(MockJobRepository)
		repo.On("FindByID", mock.Anything, j.ID).Return(j, nil)

		h := NewJobHandler(NewBaseHandler(nil), appjob.NewAdminService(repo, zap.NewNop()))
		engine := newEngine(admin)
		engine.POST("/jobs/:id/requeue", h.Requeue)

		w := perform(engine, http.MethodPost, "/jobs/"+j.ID.String()+"/requeue", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, appjob.MsgOnlyFailedRequeue, decode(t, w)["message"])
	})

	t.Run("unknown status filter", func(t *testing.T) {
		h := NewJobHandler(NewBaseHandler(nil), appjob.NewAdminService(new(MockJobRepository), zap.NewNop()))
		engine := newEngine(admin)
		engine.GET("/jobs", h.List)

		w := perform(engine, http.MethodGet, "/jobs?status=LOST", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("repository failures are recorded", func(t *testing.T) {
		rec := &errorRecorder{}
		repo := new(MockJobRepository)
		repo.On("CountByStatus", mock.Anything).Return(map[job.Status]int64(nil), errors.New("db gone"))

		h := NewJobHandler(NewBaseHandler(rec), appjob.NewAdminService(repo, zap.NewNop()))
		engine := newEngine(admin)
		engine.GET("/jobs/stats", h.Stats)

		w := perform(engine, http.MethodGet, "/jobs/stats", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, []string{"GET /jobs/stats"}, rec.sources)
	})
}
