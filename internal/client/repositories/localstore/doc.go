// Package localstore is the client's durable key/value storage, the
// terminal counterpart of browser local storage. Values are opaque bytes;
// callers own their encoding.
//
// A SQLite implementation (SQLiteRepository) works over dbx.DBTX, so it can
// be bound to a *sql.DB or to a transaction:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := localstore.NewSQLiteRepository(tx)
//	    return repo.Delete(ctx, "token", "user")
//	})
package localstore
