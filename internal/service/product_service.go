package service

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"shop-backend/internal/metrics"
	"shop-backend/internal/model"
	"shop-backend/internal/repository"
	"shop-backend/internal/sqs"
	"shop-backend/internal/storage"
)

// uploadTimeout bounds a single blob store call so a stalled provider cannot
// hold a request open indefinitely.
const uploadTimeout = 30 * time.Second

// ProductInput carries the text fields of a multipart create/update request.
// Price arrives as raw form text and is validated here, before anything is
// written anywhere.
type ProductInput struct {
	Name        string
	Description string
	Price       string
	Category    string
}

// ProductService orchestrates the upload pipeline: validate the fields,
// forward the optional image to the blob store, then commit the product
// record. The blob write and the record write are not transactional with
// each other; a crash between them leaves an orphaned blob, and a failed
// record write triggers a best-effort delete of the fresh blob.
type ProductService struct {
	repo      repository.Repository
	blobs     storage.BlobStore
	publisher *sqs.Publisher
}

// NewProductService creates a ProductService. publisher may be nil, which
// disables event notifications.
func NewProductService(repo repository.Repository, blobs storage.BlobStore, publisher *sqs.Publisher) *ProductService {
	return &ProductService{
		repo:      repo,
		blobs:     blobs,
		publisher: publisher,
	}
}

// CreateProduct validates the input, stores the optional image, and persists
// a new product whose Image is either empty or the blob store's reference.
func (ps *ProductService) CreateProduct(ctx context.Context, input ProductInput, file *storage.Upload) (*model.Product, error) {
	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	image, err := ps.storeImage(ctx, file)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       price,
		Category:    input.Category,
		Image:       image,
	}

	created, err := ps.repo.Create(ctx, product)
	if err != nil {
		ps.discardImage(image)
		return nil, err
	}

	createdProduct, ok := created.(*model.Product)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	metrics.ProductsCreated.Inc()
	ps.publishEvent(ctx, sqs.ActionCreated, createdProduct)

	return createdProduct, nil
}

// UpdateProduct validates the input and replaces the product's fields. When
// no file is attached the stored image reference is preserved exactly; when
// one is attached the upload must succeed before the record is touched.
func (ps *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput, file *storage.Upload) (*model.Product, error) {
	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	resource, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	existing, ok := resource.(*model.Product)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	image := existing.Image
	if file != nil {
		image, err = ps.storeImage(ctx, file)
		if err != nil {
			return nil, err
		}
	}

	product := &model.Product{
		ID:          existing.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       price,
		Category:    input.Category,
		Image:       image,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now(),
	}

	updated, err := ps.repo.Update(ctx, product)
	if err != nil {
		if file != nil {
			ps.discardImage(image)
		}
		return nil, err
	}

	updatedProduct, ok := updated.(*model.Product)
	if !ok {
		return nil, repository.ErrInvalidType
	}

	metrics.ProductsUpdated.Inc()
	ps.publishEvent(ctx, sqs.ActionUpdated, updatedProduct)

	return updatedProduct, nil
}

// DeleteProduct removes the record. The associated blob is left in place.
func (ps *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	resource, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	product, ok := resource.(*model.Product)
	if !ok {
		return repository.ErrInvalidType
	}

	if err := ps.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	metrics.ProductsDeleted.Inc()
	ps.publishEvent(ctx, sqs.ActionDeleted, product)

	return nil
}

// ListProducts returns products newest first. An empty query returns the
// whole catalog.
func (ps *ProductService) ListProducts(ctx context.Context, query repository.Query) ([]*model.Product, error) {
	resources, err := ps.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	products := make([]*model.Product, 0, len(resources))
	for _, resource := range resources {
		product, ok := resource.(*model.Product)
		if !ok {
			return nil, repository.ErrInvalidType
		}
		products = append(products, product)
	}
	return products, nil
}

// storeImage forwards the file to the blob store under a bounded timeout.
// A nil file means no image was attached and yields an empty reference.
func (ps *ProductService) storeImage(ctx context.Context, file *storage.Upload) (string, error) {
	if file == nil {
		return "", nil
	}

	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	reference, err := ps.blobs.Store(uploadCtx, *file)
	if err != nil {
		metrics.ImageUploadFailures.Inc()
		slog.Error("image upload failed", slog.Any("err", err), slog.String("filename", file.Filename))
		return "", &UploadError{Err: err}
	}

	metrics.ImagesUploaded.Inc()
	return reference, nil
}

// discardImage deletes a blob whose record write failed. Failures are logged
// and otherwise ignored.
func (ps *ProductService) discardImage(reference string) {
	if reference == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	if err := ps.blobs.Delete(ctx, reference); err != nil {
		slog.Error("failed to discard orphaned blob", slog.Any("err", err), slog.String("reference", reference))
	}
}

func (ps *ProductService) publishEvent(ctx context.Context, action string, product *model.Product) {
	if ps.publisher == nil {
		return
	}

	msg := sqs.ProductMessage{
		Action:    action,
		ProductID: product.ID.String(),
		Name:      product.Name,
		Price:     product.Price,
	}
	if err := ps.publisher.PublishProductMessage(ctx, msg); err != nil {
		// Log error but don't fail the request
		slog.Error("failed to publish product event", slog.Any("err", err),
			slog.String("action", action), slog.String("product_id", product.ID.String()))
	}
}

// parsePrice parses the raw form value into a finite non-negative number.
func parsePrice(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &ValidationError{Field: "price", Reason: "is required"}
	}
	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &ValidationError{Field: "price", Reason: "must be a number"}
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, &ValidationError{Field: "price", Reason: "must be finite"}
	}
	if price < 0 {
		return 0, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return price, nil
}
