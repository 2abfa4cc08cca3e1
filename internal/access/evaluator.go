// Package access computes whether a principal may read or write a resource,
// combining ownership with explicit notebook view grants. Visibility is
// expressed as query specifications so list endpoints and reference checks
// share one definition of "what the principal can see".
package access

import (
	"context"

	"conote-be/internal/apperrors"
	"conote-be/internal/entity"
	"conote-be/internal/repository/specification"
	"conote-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type Evaluator struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewEvaluator(uowFactory unitofwork.RepositoryFactory) *Evaluator {
	return &Evaluator{
		uowFactory: uowFactory,
	}
}

// grantedNotebookIDs resolves the notebooks the user holds a view grant on.
// Duplicate grant rows may exist; duplicates in the result are harmless
// because the ids only feed IN clauses.
func (e *Evaluator) grantedNotebookIDs(ctx context.Context, userId uuid.UUID) ([]uuid.UUID, error) {
	uow := e.uowFactory.NewUnitOfWork(ctx)
	grants, err := uow.NotebookGrantRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(grants))
	for _, grant := range grants {
		ids = append(ids, grant.NotebookId)
	}
	return ids, nil
}

// visibleNotebookIDs is the union of owned and granted notebook ids.
func (e *Evaluator) visibleNotebookIDs(ctx context.Context, p Principal) ([]uuid.UUID, error) {
	uow := e.uowFactory.NewUnitOfWork(ctx)
	owned, err := uow.NotebookRepository().FindAll(ctx, specification.UserOwnedBy{UserID: p.Id})
	if err != nil {
		return nil, err
	}

	granted, err := e.grantedNotebookIDs(ctx, p.Id)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(owned)+len(granted))
	ids := make([]uuid.UUID, 0, len(owned)+len(granted))
	for _, notebook := range owned {
		if _, ok := seen[notebook.Id]; !ok {
			seen[notebook.Id] = struct{}{}
			ids = append(ids, notebook.Id)
		}
	}
	for _, id := range granted {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// VisibleSet returns the query specifications that restrict a lookup over
// resources of the given kind to what the principal may see. Superusers get
// no restrictions. An empty visible set still yields a predicate that
// matches nothing, never an unrestricted query.
func (e *Evaluator) VisibleSet(ctx context.Context, p Principal, kind ResourceKind) ([]specification.Specification, error) {
	if p.IsSuperuser {
		return nil, nil
	}

	switch kind {
	case KindNotebook:
		granted, err := e.grantedNotebookIDs(ctx, p.Id)
		if err != nil {
			return nil, err
		}
		return []specification.Specification{
			specification.OwnedOrGranted{UserID: p.Id, GrantedIDs: granted},
		}, nil

	case KindNote:
		notebookIds, err := e.visibleNotebookIDs(ctx, p)
		if err != nil {
			return nil, err
		}
		return []specification.Specification{
			specification.ByNotebookIDs{NotebookIDs: notebookIds},
		}, nil

	case KindBookmark, KindComment:
		return []specification.Specification{
			specification.UserOwnedBy{UserID: p.Id},
		}, nil
	}

	return nil, apperrors.Internal("unknown resource kind", nil)
}

// CanRead reports whether the principal may read the notebook: owner,
// grant holder or superuser.
func (e *Evaluator) CanRead(ctx context.Context, p Principal, notebook *entity.Notebook) (bool, error) {
	if p.IsSuperuser || notebook.UserId == p.Id {
		return true, nil
	}

	uow := e.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.NotebookGrantRepository().Count(ctx,
		specification.UserOwnedBy{UserID: p.Id},
		specification.ByNotebookID{NotebookID: notebook.Id},
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanWrite reports whether the principal may mutate the notebook or manage
// its grants. Grant holders never may; only the owner (or a superuser).
func (e *Evaluator) CanWrite(p Principal, notebook *entity.Notebook) bool {
	return p.IsSuperuser || notebook.UserId == p.Id
}

// Authorize resolves an action on a notebook to nil or a Forbidden error.
func (e *Evaluator) Authorize(ctx context.Context, p Principal, notebook *entity.Notebook, action Action) error {
	switch action {
	case ActionRead:
		ok, err := e.CanRead(ctx, p, notebook)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.Forbidden("you do not have permission to access this notebook")
		}
		return nil
	case ActionWrite:
		if !e.CanWrite(p, notebook) {
			return apperrors.Forbidden("only the notebook owner may do this")
		}
		return nil
	}
	return apperrors.Internal("unknown action", nil)
}

// OwnNotebook fetches a notebook the principal owns. Notebooks that exist
// but belong to someone else come back as an invalid reference, so callers
// cannot probe for foreign ids.
func (e *Evaluator) OwnNotebook(ctx context.Context, p Principal, notebookId uuid.UUID) (*entity.Notebook, error) {
	uow := e.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.ByID{ID: notebookId}}
	if !p.IsSuperuser {
		specs = append(specs, specification.UserOwnedBy{UserID: p.Id})
	}

	notebook, err := uow.NotebookRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if notebook == nil {
		return nil, apperrors.Validation("invalid_notebook", "invalid notebook reference")
	}
	return notebook, nil
}

// VisibleNote fetches a note living in a notebook the principal can read.
// Used to validate note references on bookmark and comment creation.
func (e *Evaluator) VisibleNote(ctx context.Context, p Principal, noteId uuid.UUID) (*entity.Note, error) {
	uow := e.uowFactory.NewUnitOfWork(ctx)

	specs, err := e.VisibleSet(ctx, p, KindNote)
	if err != nil {
		return nil, err
	}
	specs = append(specs, specification.ByID{ID: noteId})

	note, err := uow.NoteRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperrors.Validation("invalid_note", "invalid note reference")
	}
	return note, nil
}
