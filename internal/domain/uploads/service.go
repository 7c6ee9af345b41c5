package uploads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidFileName = errors.New("invalid file name")
	ErrSigningFailed   = errors.New("could not sign upload URL")
)

// UploadTicket is a short-lived, single-blob upload grant.
type UploadTicket struct {
	URL       string    `json:"url"`
	BlobName  string    `json:"blob_name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service issues create/write SAS URLs so the browser uploads straight
// to blob storage; file bytes never transit this backend.
type Service struct {
	cred        *azblob.SharedKeyCredential
	accountName string
	container   string
	expiry      time.Duration
	log         *logrus.Entry
}

func NewService(accountName, accountKey, container string, expiry time.Duration, log *logrus.Logger) (*Service, error) {
	cred, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("create shared key credential: %w", err)
	}
	return &Service{
		cred:        cred,
		accountName: accountName,
		container:   container,
		expiry:      expiry,
		log:         log.WithField("component", "uploads"),
	}, nil
}

// IssueUploadURL signs a SAS URL for one new blob named after the
// original file with a UUID prefix to avoid collisions. contentType is
// optional; when set it is pinned into the signature.
func (s *Service) IssueUploadURL(ctx context.Context, fileName, contentType string) (*UploadTicket, error) {
	safe := sanitizeName(fileName)
	if safe == "" {
		return nil, ErrInvalidFileName
	}
	blobName := fmt.Sprintf("%s_%s", uuid.New().String(), safe)

	now := time.Now().UTC()
	expiresAt := now.Add(s.expiry)
	perms := sas.BlobPermissions{Create: true, Write: true}

	values := sas.BlobSignatureValues{
		Protocol: sas.ProtocolHTTPS,
		// Backdated start absorbs clock skew between here and the
		// storage service.
		StartTime:     now.Add(-10 * time.Minute),
		ExpiryTime:    expiresAt,
		Permissions:   perms.String(),
		ContainerName: s.container,
		BlobName:      blobName,
		ContentType:   strings.TrimSpace(contentType),
	}

	params, err := values.SignWithSharedKey(s.cred)
	if err != nil {
		s.log.WithError(err).Error("SAS signing failed")
		return nil, ErrSigningFailed
	}

	url := fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s?%s",
		s.accountName, s.container, blobName, params.Encode())

	return &UploadTicket{
		URL:       url,
		BlobName:  blobName,
		ExpiresAt: expiresAt,
	}, nil
}

// sanitizeName keeps letters, digits, dots, dashes and underscores and
// drops everything else, including any path components.
func sanitizeName(name string) string {
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), ".")
}
