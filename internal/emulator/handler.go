package emulator

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/trowebseed/internal/client/models"
	"github.com/dmitrijs2005/trowebseed/internal/logging"
	"github.com/gin-gonic/gin"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

type graphQLRequest struct {
	Query     string          `json:"query"`
	Variables json.RawMessage `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type createItemsVariables struct {
	Items        []models.Record `json:"programmingLanguages"`
	CollectionID string          `json:"collectionId"`
}

type uploadGrantsVariables struct {
	BlobsInfo    []models.FileDescriptor `json:"blobsInfo"`
	CollectionID string                  `json:"collectionId"`
}

// grantPayload is the wire shape of one signed upload grant. formFields is
// sent as a JSON document serialized into a string, as Troweb does.
type grantPayload struct {
	ID         string `json:"_id"`
	FileName   string `json:"fileName"`
	BlobType   string `json:"blobType"`
	URL        string `json:"url"`
	FormFields string `json:"formFields"`
}

// Handler serves the GraphQL endpoint and, with a LocalSigner, the upload
// endpoint grants point to.
type Handler struct {
	store  *Store
	signer Signer
	logger logging.Logger
}

func NewHandler(store *Store, signer Signer, logger logging.Logger) *Handler {
	return &Handler{store: store, signer: signer, logger: logger}
}

// GraphQL dispatches on the operation named in the query text. Only the
// two operations the loaders use are understood.
func (h *Handler) GraphQL(c *gin.Context) {
	var req graphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []graphQLError{{Message: "invalid request body"}}})
		return
	}

	switch {
	case strings.Contains(req.Query, "createProgrammingLanguages"):
		h.createProgrammingLanguages(c, req.Variables)
	case strings.Contains(req.Query, "getBlobUploadSignedUrl"):
		h.getBlobUploadSignedURL(c, req.Variables)
	default:
		writeErrors(c, "unknown operation")
	}
}

func (h *Handler) createProgrammingLanguages(c *gin.Context, raw json.RawMessage) {
	var vars createItemsVariables
	if err := decodeVariables(raw, &vars); err != nil {
		writeErrors(c, err.Error())
		return
	}
	if !objectIDPattern.MatchString(vars.CollectionID) {
		writeErrors(c, "invalid ObjectId: "+vars.CollectionID)
		return
	}

	created := h.store.InsertItems(vars.CollectionID, vars.Items)
	h.logger.Info(c.Request.Context(), "items created", "collection_id", vars.CollectionID, "count", len(created))

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"createProgrammingLanguages": created}})
}

func (h *Handler) getBlobUploadSignedURL(c *gin.Context, raw json.RawMessage) {
	var vars uploadGrantsVariables
	if err := decodeVariables(raw, &vars); err != nil {
		writeErrors(c, err.Error())
		return
	}
	if !objectIDPattern.MatchString(vars.CollectionID) {
		writeErrors(c, "invalid ObjectId: "+vars.CollectionID)
		return
	}

	grants := make([]grantPayload, 0, len(vars.BlobsInfo))
	for _, blob := range vars.BlobsInfo {
		if blob.FileName == "" {
			writeErrors(c, "blob without fileName")
			return
		}

		g, err := h.signer.Sign(c.Request.Context(), StorageKey(vars.CollectionID, blob.FileName), blob)
		if err != nil {
			h.logger.Error(c.Request.Context(), "sign upload", "file_name", blob.FileName, "error", err)
			writeErrors(c, "could not sign upload for "+blob.FileName)
			return
		}

		fields, err := json.Marshal(g.Fields)
		if err != nil {
			writeErrors(c, err.Error())
			return
		}

		grants = append(grants, grantPayload{
			ID:         NewObjectID(),
			FileName:   blob.FileName,
			BlobType:   blobType(blob.MimeType),
			URL:        g.URL,
			FormFields: string(fields),
		})
	}

	h.logger.Info(c.Request.Context(), "upload grants issued", "collection_id", vars.CollectionID, "count", len(grants))

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"getBlobUploadSignedUrl": grants}})
}

// Upload accepts a multipart POST made against a LocalSigner grant.
func (h *Handler) Upload(verifier *LocalSigner) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.PostForm("key")

		if err := verifier.Verify(key, c.PostForm("expires"), c.PostForm("signature")); err != nil {
			status := http.StatusForbidden
			if errors.Is(err, ErrGrantExpired) {
				status = http.StatusUnauthorized
			}
			c.String(status, err.Error())
			return
		}

		fh, err := c.FormFile("file")
		if err != nil {
			c.String(http.StatusBadRequest, "missing file part")
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}

		h.store.PutBlob(Blob{
			Key:         key,
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
		h.logger.Info(c.Request.Context(), "blob stored", "key", key, "size", len(data))

		c.Status(http.StatusNoContent)
	}
}

// BearerAuth rejects requests whose Authorization header is not
// "Bearer <apiKey>". An empty apiKey rejects everything.
func BearerAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || apiKey == "" || token != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"errors": []graphQLError{{Message: "Unauthorized"}},
			})
			return
		}

		c.Next()
	}
}

func decodeVariables(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return errors.New("missing variables")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.New("invalid variables: " + err.Error())
	}
	return nil
}

func writeErrors(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"data": nil, "errors": []graphQLError{{Message: msg}}})
}

// blobType derives the coarse blob kind from a MIME type.
func blobType(mimeType string) string {
	major, _, _ := strings.Cut(mimeType, "/")
	if major == "" {
		return "application"
	}
	return major
}
