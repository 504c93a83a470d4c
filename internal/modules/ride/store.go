// README: Ride store backed by Firestore documents.
package ride

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"overlook/internal/types"
)

const ridesCollection = "rides"

// firestoreStore persists rides as whole documents. Updates rewrite the
// document; concurrent writers are last-writer-wins, which matches the
// storage contract the fee model assumes (and documents).
type firestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) Store {
	return &firestoreStore{client: client}
}

func (s *firestoreStore) Create(ctx context.Context, r *Ride) error {
	if r.ID == "" {
		r.ID = types.ID(s.client.Collection(ridesCollection).NewDoc().ID)
	}
	_, err := s.client.Collection(ridesCollection).Doc(string(r.ID)).Create(ctx, r)
	if err != nil {
		return fmt.Errorf("creating ride document: %w", err)
	}
	return nil
}

func (s *firestoreStore) Get(ctx context.Context, id types.ID) (*Ride, error) {
	doc, err := s.client.Collection(ridesCollection).Doc(string(id)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading ride document: %w", err)
	}
	var r Ride
	if err := doc.DataTo(&r); err != nil {
		return nil, fmt.Errorf("decoding ride document: %w", err)
	}
	r.ID = types.ID(doc.Ref.ID)
	return &r, nil
}

func (s *firestoreStore) Update(ctx context.Context, r *Ride) error {
	_, err := s.client.Collection(ridesCollection).Doc(string(r.ID)).Set(ctx, r)
	if err != nil {
		return fmt.Errorf("updating ride document: %w", err)
	}
	return nil
}
