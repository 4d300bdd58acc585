package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProductsCreated is a Prometheus counter for tracking the total number of products created.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "The total number of products created",
	})

	// ProductsUpdated is a Prometheus counter for tracking the total number of products updated.
	ProductsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_updated_total",
		Help: "The total number of products updated",
	})

	// ProductsDeleted is a Prometheus counter for tracking the total number of products deleted.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_deleted_total",
		Help: "The total number of products deleted",
	})

	// ImagesUploaded is a Prometheus counter for tracking successful image uploads to the blob store.
	ImagesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "images_uploaded_total",
		Help: "The total number of product images uploaded",
	})

	// ImageUploadFailures is a Prometheus counter for tracking failed image uploads.
	ImageUploadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "image_upload_failures_total",
		Help: "The total number of failed product image uploads",
	})

	// UsersRegistered is a Prometheus counter for tracking the total number of registered users.
	UsersRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "users_registered_total",
		Help: "The total number of registered users",
	})
)
