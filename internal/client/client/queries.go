package client

import (
	"encoding/json"

	"github.com/dmitrijs2005/trowebseed/internal/client/models"
)

const createRecordsMutation = `
  mutation createProgrammingLanguages (
    $programmingLanguages: [InsertProgrammingLanguages_ProgrammingLanguageItems!]!
    $collectionId: ObjectId!
  ) {
    createProgrammingLanguages(items: $programmingLanguages, parentId: $collectionId) {
      _id
      title
      website
      designers
      description
    }
  }
`

const getUploadGrantsQuery = `
  query GetSignedUrls(
    $blobsInfo: [UploadBlobInfoInput!]!
    $collectionId: ObjectId!
  ) {
    getBlobUploadSignedUrl(blobsInfo: $blobsInfo, collectionId: $collectionId) {
      _id
      fileName
      blobType
      url
      formFields
    }
  }
`

// Pointers to slices tell a missing field apart from an empty list.
type createRecordsResponse struct {
	CreateProgrammingLanguages *[]models.CreatedRecord `json:"createProgrammingLanguages"`
}

type uploadGrantsResponse struct {
	GetBlobUploadSignedURL *[]grantDTO `json:"getBlobUploadSignedUrl"`
}

// grantDTO mirrors the wire shape; formFields is usually a JSON document
// serialized into a string.
type grantDTO struct {
	ID         string          `json:"_id"`
	FileName   string          `json:"fileName"`
	BlobType   string          `json:"blobType"`
	URL        string          `json:"url"`
	FormFields json.RawMessage `json:"formFields"`
}
