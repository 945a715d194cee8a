package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/histcollect/histcollect/internal/domain"
	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

// HDCARepository defines the persistence operations HDCA managers need
type HDCARepository interface {
	GetByID(ctx context.Context, id int64) (*domain.HDCA, error)
	SetDeleted(ctx context.Context, id int64, deleted bool) error
	Purge(ctx context.Context, id int64) (int64, error)
	SetTags(ctx context.Context, id, userID int64, tags []domain.Tag) error
	SetAnnotation(ctx context.Context, id, userID int64, annotation *string) error
}

// Accessible gates reads on history visibility
type Accessible struct {
	repo HDCARepository
}

// GetAccessible loads an HDCA readable by user: the history owner, an admin,
// or anyone when the history is published or importable
func (a Accessible) GetAccessible(ctx context.Context, id int64, user *domain.User) (*domain.HDCA, error) {
	item, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.ErrorUnlessAccessible(item, user); err != nil {
		return nil, err
	}
	return item, nil
}

// IsAccessible reports whether user may read item
func (a Accessible) IsAccessible(item *domain.HDCA, user *domain.User) bool {
	h := item.History
	if h == nil {
		return false
	}
	if user != nil && user.Admin {
		return true
	}
	return h.IsOwnedBy(user) || h.Published || h.Importable
}

// ErrorUnlessAccessible returns a forbidden error when user may not read item
func (a Accessible) ErrorUnlessAccessible(item *domain.HDCA, user *domain.User) error {
	if item.History == nil {
		return apperrors.Inconsistent(fmt.Sprintf("hdca %d loaded without its history", item.ID))
	}
	if !a.IsAccessible(item, user) {
		return apperrors.Forbidden("dataset collection is not accessible by the current user")
	}
	return nil
}

// Ownable gates mutations on history ownership
type Ownable struct {
	repo HDCARepository
}

// GetOwned loads an HDCA owned by user; admins own everything
func (o Ownable) GetOwned(ctx context.Context, id int64, user *domain.User) (*domain.HDCA, error) {
	item, err := o.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.ErrorUnlessOwner(item, user); err != nil {
		return nil, err
	}
	return item, nil
}

// IsOwner reports whether user may modify item
func (o Ownable) IsOwner(item *domain.HDCA, user *domain.User) bool {
	if user == nil || item.History == nil {
		return false
	}
	return user.Admin || item.History.IsOwnedBy(user)
}

// ErrorUnlessOwner returns an error when user may not modify item
func (o Ownable) ErrorUnlessOwner(item *domain.HDCA, user *domain.User) error {
	if user == nil {
		return apperrors.Unauthorized("authentication required to modify a dataset collection")
	}
	if item.History == nil {
		return apperrors.Inconsistent(fmt.Sprintf("hdca %d loaded without its history", item.ID))
	}
	if !o.IsOwner(item, user) {
		return apperrors.Forbidden("dataset collection is not owned by the current user")
	}
	return nil
}

// Purgable implements the active -> deleted -> purged lifecycle.
// Purged is terminal: only a repeated purge is accepted, as a no-op.
type Purgable struct {
	repo   HDCARepository
	logger *zap.Logger
}

// Delete marks item deleted. Deleting a deleted item is a no-op.
func (p Purgable) Delete(ctx context.Context, item *domain.HDCA) error {
	switch item.DeletionState() {
	case domain.DeletionStateDeleted:
		return nil
	case domain.DeletionStatePurged:
		return apperrors.Conflict("dataset collection is purged")
	}

	if err := p.repo.SetDeleted(ctx, item.ID, true); err != nil {
		return err
	}
	item.Deleted = true
	p.logger.Info("hdca deleted", zap.Int64("hdca_id", item.ID))
	return nil
}

// Undelete clears the deleted flag. Undeleting an active item is a no-op.
func (p Purgable) Undelete(ctx context.Context, item *domain.HDCA) error {
	switch item.DeletionState() {
	case domain.DeletionStateActive:
		return nil
	case domain.DeletionStatePurged:
		return apperrors.Conflict("purged dataset collection cannot be undeleted")
	}

	if err := p.repo.SetDeleted(ctx, item.ID, false); err != nil {
		return err
	}
	item.Deleted = false
	p.logger.Info("hdca undeleted", zap.Int64("hdca_id", item.ID))
	return nil
}

// Purge permanently removes the content of a deleted item
func (p Purgable) Purge(ctx context.Context, item *domain.HDCA) error {
	switch item.DeletionState() {
	case domain.DeletionStateActive:
		return apperrors.Conflict("dataset collection must be deleted before it is purged")
	case domain.DeletionStatePurged:
		return nil
	}

	datasets, err := p.repo.Purge(ctx, item.ID)
	if err != nil {
		return err
	}
	item.Purged = true
	p.logger.Info("hdca purged",
		zap.Int64("hdca_id", item.ID),
		zap.Int64("datasets_purged", datasets),
	)
	return nil
}

// Taggable manages user tags
type Taggable struct {
	repo HDCARepository
}

// SetTags replaces the tags of item with the parsed raw tags
func (t Taggable) SetTags(ctx context.Context, item *domain.HDCA, user *domain.User, raw []string) error {
	if user == nil {
		return apperrors.Unauthorized("authentication required to tag a dataset collection")
	}
	tags, err := domain.ParseTags(raw)
	if err != nil {
		return apperrors.Validation(err.Error())
	}
	if err := t.repo.SetTags(ctx, item.ID, user.ID, tags); err != nil {
		return err
	}
	item.Tags = tags
	return nil
}

// Tags returns the string form of the tags of item
func (t Taggable) Tags(item *domain.HDCA) []string {
	out := make([]string, 0, len(item.Tags))
	for _, tag := range item.Tags {
		out = append(out, tag.String())
	}
	return out
}

// Annotatable manages user annotations
type Annotatable struct {
	repo HDCARepository
}

// Annotate sets the annotation of item; blank text removes it
func (a Annotatable) Annotate(ctx context.Context, item *domain.HDCA, user *domain.User, text string) error {
	if user == nil {
		return apperrors.Unauthorized("authentication required to annotate a dataset collection")
	}

	var annotation *string
	if text = strings.TrimSpace(text); text != "" {
		annotation = &text
	}
	if err := a.repo.SetAnnotation(ctx, item.ID, user.ID, annotation); err != nil {
		return err
	}
	item.Annotation = annotation
	return nil
}

// Annotation returns the annotation of item, or nil
func (a Annotatable) Annotation(item *domain.HDCA) *string {
	return item.Annotation
}
