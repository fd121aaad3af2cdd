package db

import (
	"context"
	"fmt"
)

// ConnectSQLBackend picks and connects the SQL backend for argument and
// episode data: plain Postgres when a DSN is configured, Supabase
// otherwise. The returned close func releases the connection.
func ConnectSQLBackend(ctx context.Context, postgresDSN, supabaseURL, supabaseKey, supabasePassword string) (DBProvider, func(), error) {
	if postgresDSN != "" {
		client := NewPostgresClient(PostgresConfig{DSN: postgresDSN})
		if err := client.Connect(ctx); err != nil {
			return nil, nil, err
		}
		return client, func() { _ = client.Close() }, nil
	}

	if supabaseURL != "" {
		client := NewSupabaseClient(SupabaseConfig{
			SupabaseURL: supabaseURL,
			SupabaseKey: supabaseKey,
			Password:    supabasePassword,
		})
		if err := client.Connect(ctx); err != nil {
			return nil, nil, err
		}
		if !client.HasDirectDB() {
			_ = client.Close()
			return nil, nil, fmt.Errorf("supabase client has no direct database connection")
		}
		return client, func() { _ = client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("no sql backend configured, set postgres_dsn or the supabase values")
}
