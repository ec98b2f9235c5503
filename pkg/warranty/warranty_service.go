package warranty

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/internal/utils"
	"Billfold-Backend/pkg/bill"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultSearchRadiusMeters = 5000

type (
	// WarrantyService starts a warranty claim by finding service centers for
	// the shop a bill was purchased from, near the caller's position.
	WarrantyService interface {
		FindServiceCenters(ctx context.Context, billID string, req domain.FindServiceCentersRequest, userID string) ([]domain.ServiceCenter, error)
	}

	warrantyService struct {
		billRepository bill.BillRepository
		httpClient     *http.Client
		apiKey         string
		baseURL        string
	}
)

func NewWarrantyService(billRepository bill.BillRepository) WarrantyService {
	return &warrantyService{
		billRepository: billRepository,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		apiKey:         utils.GetConfig("GOOGLE_MAPS_API_KEY"),
		baseURL:        "https://maps.googleapis.com",
	}
}

func (s *warrantyService) FindServiceCenters(ctx context.Context, billID string, req domain.FindServiceCentersRequest, userID string) ([]domain.ServiceCenter, error) {
	if _, err := uuid.Parse(billID); err != nil {
		return nil, domain.ErrParseUUID
	}

	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return nil, domain.ErrInvalidCoordinates
	}

	billRecord, err := s.billRepository.GetBillByID(ctx, billID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBillNotFound
		}
		return nil, err
	}

	if billRecord.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}

	radius := req.Radius
	if radius <= 0 {
		radius = defaultSearchRadiusMeters
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", req.Latitude, req.Longitude))
	params.Set("radius", fmt.Sprintf("%.0f", radius))
	params.Set("keyword", fmt.Sprintf("%s service center", billRecord.ShopName))
	params.Set("key", s.apiKey)

	endpoint := fmt.Sprintf("%s/maps/api/place/nearbysearch/json?%s", s.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("places API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var placesResp struct {
		Status  string `json:"status"`
		Results []struct {
			Name     string `json:"name"`
			Vicinity string `json:"vicinity"`
			Rating   float64 `json:"rating"`
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
			OpeningHours *struct {
				OpenNow bool `json:"open_now"`
			} `json:"opening_hours"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&placesResp); err != nil {
		return nil, domain.ErrPlacesProcessingFailed
	}

	if placesResp.Status != "OK" && placesResp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlacesProcessingFailed, placesResp.Status)
	}

	if len(placesResp.Results) == 0 {
		return []domain.ServiceCenter{}, domain.ErrServiceCenterUnavailable
	}

	centers := make([]domain.ServiceCenter, 0, len(placesResp.Results))
	for _, result := range placesResp.Results {
		center := domain.ServiceCenter{
			Name:      result.Name,
			Address:   result.Vicinity,
			Latitude:  result.Geometry.Location.Lat,
			Longitude: result.Geometry.Location.Lng,
			Rating:    result.Rating,
		}
		if result.OpeningHours != nil {
			openNow := result.OpeningHours.OpenNow
			center.OpenNow = &openNow
		}
		centers = append(centers, center)
	}

	return centers, nil
}
