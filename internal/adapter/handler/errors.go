package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srgjo27/stay_booking/internal/core/domain"
)

// respondError writes err with the status its kind maps to. Unknown errors are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		conflictErr   *domain.ConflictError
		transitionErr *domain.InvalidStateTransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		body := gin.H{"error": validationErr.Error()}
		if validationErr.Field != "" {
			body["field"] = validationErr.Field
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		body := gin.H{"error": conflictErr.Error()}
		if conflictErr.Reference != "" {
			body["conflicting_reference"] = conflictErr.Reference
		}
		c.JSON(http.StatusConflict, body)
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": transitionErr.Error(),
			"from":  transitionErr.From,
			"to":    transitionErr.To,
		})
	case errors.Is(err, domain.ErrPriceUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}

	return id, true
}

// stayQuery reads start_date and end_date from the query string.
func stayQuery(c *gin.Context) (domain.Stay, error) {
	start, err := dateQuery(c, "start_date")
	if err != nil {
		return domain.Stay{}, err
	}

	end, err := dateQuery(c, "end_date")
	if err != nil {
		return domain.Stay{}, err
	}

	return domain.Stay{Start: start, End: end}, nil
}

func dateQuery(c *gin.Context, name string) (domain.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return domain.Date{}, domain.NewValidationError(name, "is required")
	}

	d, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Date{}, domain.NewValidationError(name, "must be a date in YYYY-MM-DD format")
	}

	return d, nil
}
