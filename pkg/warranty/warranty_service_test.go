package warranty

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/entities"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBillRepository struct {
	bills map[string]*entities.Bill
}

func newFakeBillRepository() *fakeBillRepository {
	return &fakeBillRepository{bills: make(map[string]*entities.Bill)}
}

func (f *fakeBillRepository) CreateBill(_ context.Context, bill *entities.Bill) error {
	f.bills[bill.ID.String()] = bill
	return nil
}

func (f *fakeBillRepository) GetBillByID(_ context.Context, id string) (*entities.Bill, error) {
	bill, ok := f.bills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return bill, nil
}

func (f *fakeBillRepository) GetBillsByUserID(_ context.Context, userID string) ([]*entities.Bill, error) {
	var out []*entities.Bill
	for _, bill := range f.bills {
		if bill.UserID.String() == userID {
			out = append(out, bill)
		}
	}
	return out, nil
}

func (f *fakeBillRepository) UpdateBillFields(_ context.Context, id string, fields map[string]interface{}, items []*entities.BillItem) error {
	return nil
}

func (f *fakeBillRepository) DeleteBill(_ context.Context, id string, userID string) (*entities.Bill, error) {
	return nil, gorm.ErrRecordNotFound
}

func newTestService(repo *fakeBillRepository, baseURL string) *warrantyService {
	return &warrantyService{
		billRepository: repo,
		httpClient:     &http.Client{Timeout: 5 * time.Second},
		apiKey:         "test-key",
		baseURL:        baseURL,
	}
}

func seedBill(repo *fakeBillRepository, shopName string) *entities.Bill {
	bill := &entities.Bill{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		BillName: "Laptop",
		ShopName: shopName,
	}
	repo.bills[bill.ID.String()] = bill
	return bill
}

func placesResponse(status string, results ...map[string]interface{}) map[string]interface{} {
	if results == nil {
		results = []map[string]interface{}{}
	}
	return map[string]interface{}{"status": status, "results": results}
}

func TestFindServiceCentersRoundTrip(t *testing.T) {
	repo := newFakeBillRepository()
	bill := seedBill(repo, "TechMart")

	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"keyword":  r.URL.Query().Get("keyword"),
			"location": r.URL.Query().Get("location"),
			"radius":   r.URL.Query().Get("radius"),
		}
		json.NewEncoder(w).Encode(placesResponse("OK",
			map[string]interface{}{
				"name":     "TechMart Service Center",
				"vicinity": "12 Main St",
				"rating":   4.5,
				"geometry": map[string]interface{}{
					"location": map[string]interface{}{"lat": -6.2, "lng": 106.8},
				},
				"opening_hours": map[string]interface{}{"open_now": true},
			},
			map[string]interface{}{
				"name":     "TechMart Repairs",
				"vicinity": "99 Side St",
				"geometry": map[string]interface{}{
					"location": map[string]interface{}{"lat": -6.21, "lng": 106.81},
				},
			},
		))
	}))
	defer server.Close()

	service := newTestService(repo, server.URL)
	centers, err := service.FindServiceCenters(context.Background(), bill.ID.String(), domain.FindServiceCentersRequest{
		Latitude:  -6.2,
		Longitude: 106.8,
	}, bill.UserID.String())
	require.NoError(t, err)
	require.Len(t, centers, 2)

	assert.Equal(t, "TechMart service center", gotQuery["keyword"])
	assert.Equal(t, "5000", gotQuery["radius"])

	assert.Equal(t, "TechMart Service Center", centers[0].Name)
	assert.Equal(t, "12 Main St", centers[0].Address)
	require.NotNil(t, centers[0].OpenNow)
	assert.True(t, *centers[0].OpenNow)
	assert.Nil(t, centers[1].OpenNow)
}

func TestFindServiceCentersCustomRadius(t *testing.T) {
	repo := newFakeBillRepository()
	bill := seedBill(repo, "TechMart")

	var gotRadius string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRadius = r.URL.Query().Get("radius")
		json.NewEncoder(w).Encode(placesResponse("ZERO_RESULTS"))
	}))
	defer server.Close()

	service := newTestService(repo, server.URL)
	centers, err := service.FindServiceCenters(context.Background(), bill.ID.String(), domain.FindServiceCentersRequest{
		Latitude:  -6.2,
		Longitude: 106.8,
		Radius:    1500,
	}, bill.UserID.String())
	require.ErrorIs(t, err, domain.ErrServiceCenterUnavailable)
	assert.NotNil(t, centers)
	assert.Empty(t, centers)
	assert.Equal(t, "1500", gotRadius)
}

func TestFindServiceCentersMalformedBillID(t *testing.T) {
	service := newTestService(newFakeBillRepository(), "http://unused")

	_, err := service.FindServiceCenters(context.Background(), "not-a-uuid", domain.FindServiceCentersRequest{}, uuid.NewString())
	require.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestFindServiceCentersRejectsBadCoordinates(t *testing.T) {
	repo := newFakeBillRepository()
	bill := seedBill(repo, "TechMart")
	service := newTestService(repo, "http://unused")

	_, err := service.FindServiceCenters(context.Background(), bill.ID.String(), domain.FindServiceCentersRequest{
		Latitude:  91,
		Longitude: 0,
	}, bill.UserID.String())
	require.ErrorIs(t, err, domain.ErrInvalidCoordinates)
}

func TestFindServiceCentersBillNotFound(t *testing.T) {
	service := newTestService(newFakeBillRepository(), "http://unused")

	_, err := service.FindServiceCenters(context.Background(), uuid.NewString(), domain.FindServiceCentersRequest{
		Latitude:  -6.2,
		Longitude: 106.8,
	}, uuid.NewString())
	require.ErrorIs(t, err, domain.ErrBillNotFound)
}

func TestFindServiceCentersForeignBill(t *testing.T) {
	repo := newFakeBillRepository()
	bill := seedBill(repo, "TechMart")
	service := newTestService(repo, "http://unused")

	_, err := service.FindServiceCenters(context.Background(), bill.ID.String(), domain.FindServiceCentersRequest{
		Latitude:  -6.2,
		Longitude: 106.8,
	}, uuid.NewString())
	require.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestFindServiceCentersUpstreamDenied(t *testing.T) {
	repo := newFakeBillRepository()
	bill := seedBill(repo, "TechMart")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(placesResponse("REQUEST_DENIED"))
	}))
	defer server.Close()

	service := newTestService(repo, server.URL)
	_, err := service.FindServiceCenters(context.Background(), bill.ID.String(), domain.FindServiceCentersRequest{
		Latitude:  -6.2,
		Longitude: 106.8,
	}, bill.UserID.String())
	require.ErrorIs(t, err, domain.ErrPlacesProcessingFailed)
}
