package handler

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"real_estate/internal/domain"
	"real_estate/internal/middleware"
	"real_estate/internal/service"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

const imageField = "imageUrl"

type ListingHandler struct {
	listingService service.ListingService
	log            logger.Logger
}

func NewListingHandler(listingService service.ListingService, log logger.Logger) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
		log:            log,
	}
}

func (h *ListingHandler) Create(c *gin.Context) {
	in, files, err := bindListingInput(c)
	if err != nil {
		fail(c, err)
		return
	}

	listing, err := h.listingService.Create(c.Request.Context(), middleware.CurrentUser(c), in, files)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Listing created successfully", "listing": listing})
}

func (h *ListingHandler) Edit(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	in, files, err := bindListingInput(c)
	if err != nil {
		fail(c, err)
		return
	}

	listing, err := h.listingService.Edit(c.Request.Context(), middleware.CurrentUser(c).ID, id, in, files)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Listing updated successfully", "listing": listing})
}

func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.listingService.Delete(c.Request.Context(), middleware.CurrentUser(c).ID, id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Listing has been deleted!"})
}

func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	listing, err := h.listingService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "listing": listing})
}

func (h *ListingHandler) Search(c *gin.Context) {
	listings, err := h.listingService.Search(c.Request.Context(), parseListingFilter(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "listings": listings})
}

func (h *ListingHandler) UserListings(c *gin.Context) {
	ownerID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	listings, err := h.listingService.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "listings": listings})
}

// parseListingFilter never fails. Unparsable values fall back to defaults.
func parseListingFilter(c *gin.Context) domain.ListingFilter {
	f := domain.ListingFilter{
		SearchTerm: strings.TrimSpace(c.Query("searchTerm")),
		Kind:       domain.ListingKind(strings.ToLower(c.DefaultQuery("type", string(domain.ListingKindAll)))),
		Parking:    c.Query("parking") == "true",
		Furnished:  c.Query("furnished") == "true",
		Offer:      c.Query("offer") == "true",
		Verified:   c.Query("verified") == "true",
		SortField:  c.Query("sort"),
		Ascending:  c.Query("order") == "asc",
		Offset:     nonNegativeInt(c.Query("startIndex"), 0),
		Limit:      nonNegativeInt(c.Query("limit"), domain.DefaultSearchLimit),
	}

	for _, raw := range c.QueryArray("propertyType") {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.PropertyTypes = append(f.PropertyTypes, t)
			}
		}
	}
	return f
}

func nonNegativeInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// bindListingInput reads JSON, or a multipart form whose address, features
// and size fields hold JSON objects. Both paths end in the same validation.
func bindListingInput(c *gin.Context) (*domain.ListingInput, []*multipart.FileHeader, error) {
	in := domain.NewListingInput()

	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		if err := c.ShouldBindJSON(in); err != nil {
			return nil, nil, bindError(err)
		}
		return in, nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, apperrors.BadRequest("Invalid multipart form")
	}
	if err := decodeListingForm(form.Value, in); err != nil {
		return nil, nil, err
	}
	if err := binding.Validator.ValidateStruct(in); err != nil {
		return nil, nil, bindError(err)
	}
	return in, form.File[imageField], nil
}

func decodeListingForm(values map[string][]string, in *domain.ListingInput) error {
	get := func(key string) string {
		if v := values[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	in.Name = get("name")
	in.Description = get("description")
	in.Type = get("type")
	in.Status = domain.ListingStatus(get("status"))
	for _, u := range values["imageUrls"] {
		if u = strings.TrimSpace(u); u != "" {
			in.ImageURLs = append(in.ImageURLs, u)
		}
	}

	var err error
	if in.RegularPrice, err = formFloat(get("regularPrice"), "regularPrice"); err != nil {
		return err
	}
	if raw := get("discountPrice"); raw != "" {
		v, err := formFloat(raw, "discountPrice")
		if err != nil {
			return err
		}
		in.DiscountPrice = &v
	}
	if in.Bedrooms, err = formInt(get("bedrooms"), "bedrooms"); err != nil {
		return err
	}
	if in.Bathrooms, err = formInt(get("bathrooms"), "bathrooms"); err != nil {
		return err
	}

	objects := []struct {
		key string
		dst interface{}
	}{
		{"address", &in.Address},
		{"features", &in.Features},
		{"size", &in.Size},
	}
	for _, o := range objects {
		raw := get(o.key)
		if raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(raw), o.dst); err != nil {
			return apperrors.BadRequest(o.key + " is invalid")
		}
	}
	return nil
}

func formFloat(raw, field string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.BadRequest(field + " is invalid")
	}
	return v, nil
}

func formInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.BadRequest(field + " is invalid")
	}
	return v, nil
}
