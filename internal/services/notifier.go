package services

import (
	"context"
	"fmt"

	"github.com/docukit/docgraph-backend/internal/bus"
	"github.com/docukit/docgraph-backend/internal/logger"
)

// Notifier publishes a human-readable description of each committed change
// to the updates channel. It runs after the mutation; an error here is
// reported to the caller but never rolls anything back.
type Notifier interface {
	AuthorFirstNameUpdated(ctx context.Context, authorID int, firstName string) error
	AuthorLastNameUpdated(ctx context.Context, authorID int, lastName string) error
	DocumentTitleUpdated(ctx context.Context, documentID int, title string) error
	DocumentBodyUpdated(ctx context.Context, documentID int) error
	AuthorAddedToDocument(ctx context.Context, documentID, authorID int) error
	AuthorRemovedFromDocument(ctx context.Context, documentID, authorID int) error
	ReferenceAddedToDocument(ctx context.Context, referencingID, referencedID int) error
	ReferenceRemovedFromDocument(ctx context.Context, referencingID, referencedID int) error
}

type notifier struct {
	log       *logger.Logger
	publisher bus.Publisher
	channel   string
}

func NewNotifier(log *logger.Logger, publisher bus.Publisher, channel string) Notifier {
	return &notifier{
		log:       log.With("service", "Notifier"),
		publisher: publisher,
		channel:   channel,
	}
}

func (n *notifier) publish(ctx context.Context, message string) error {
	if n == nil || n.publisher == nil {
		return nil
	}
	if err := n.publisher.Publish(ctx, n.channel, message); err != nil {
		n.log.Warn("update notification failed", "message", message, "error", err)
		return err
	}
	return nil
}

func (n *notifier) AuthorFirstNameUpdated(ctx context.Context, authorID int, firstName string) error {
	return n.publish(ctx, fmt.Sprintf("Author with ID %d had their first name updated to %s", authorID, firstName))
}

func (n *notifier) AuthorLastNameUpdated(ctx context.Context, authorID int, lastName string) error {
	return n.publish(ctx, fmt.Sprintf("Author with ID %d had their last name updated to %s", authorID, lastName))
}

func (n *notifier) DocumentTitleUpdated(ctx context.Context, documentID int, title string) error {
	return n.publish(ctx, fmt.Sprintf("Document with ID %d had its title updated to %s", documentID, title))
}

func (n *notifier) DocumentBodyUpdated(ctx context.Context, documentID int) error {
	return n.publish(ctx, fmt.Sprintf("Document with ID %d had its body updated", documentID))
}

func (n *notifier) AuthorAddedToDocument(ctx context.Context, documentID, authorID int) error {
	return n.publish(ctx, fmt.Sprintf("Document with ID %d had author with ID %d added as new author", documentID, authorID))
}

func (n *notifier) AuthorRemovedFromDocument(ctx context.Context, documentID, authorID int) error {
	return n.publish(ctx, fmt.Sprintf("Document with ID %d had author with ID %d removed as author", documentID, authorID))
}

func (n *notifier) ReferenceAddedToDocument(ctx context.Context, referencingID, referencedID int) error {
	return n.publish(ctx, fmt.Sprintf("Document with ID %d had document with ID %d added as reference", referencingID, referencedID))
}

func (n *notifier) ReferenceRemovedFromDocument(ctx context.Context, referencingID, referencedID int) error {
	return n.publish(ctx, fmt.Sprintf("Document with ID %d had document with ID %d removed as reference", referencingID, referencedID))
}
