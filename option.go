package rowstore

type Option func(o *option)

type option struct {
	name        string
	statements  *Statements
	idFieldName string
}

// WithName names the database in log output.
func WithName(name string) Option {
	return func(o *option) {
		o.name = name
	}
}

// WithStatements shares an already populated registry.
func WithStatements(statements *Statements) Option {
	return func(o *option) {
		o.statements = statements
	}
}

// WithIDFieldName sets the identity column of the rows DB.Select returns.
func WithIDFieldName(name string) Option {
	return func(o *option) {
		o.idFieldName = name
	}
}
