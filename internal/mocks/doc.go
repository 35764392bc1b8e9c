// Package mocks provides hand-written test doubles for the store and auth
// interfaces.
//
// Each mock exposes one function field per method (suffix Fn). When a field
// is nil the mock falls back to a fixed default, usually the Err field or a
// not-found error:
//
//	users := &mocks.MockUserStore{
//	    GetByUsernameFn: func(ctx context.Context, username string) (*domain.User, error) {
//	        return nil, store.ErrUserNotFound
//	    },
//	}
package mocks
