package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"golang.org/x/term"
)

var (
	queryJSON       bool
	queryVariables  string
	queryOperation  string
	querySchemaOnly bool
)

var graphqlCmd = &cobra.Command{
	Use:     "graphql <query>",
	Aliases: []string{"query"},
	Short:   "Execute a GraphQL query or mutation",
	Long: `Execute a GraphQL query or mutation against a fresh in-memory store.

The store is seeded exactly as the server would be, and discarded when the
command exits.

Examples:
  # Say hello
  crudql graphql '{ hello }'

  # Get a specific user
  crudql graphql '{ user(id: "1") { id name age } }'

  # Create and read back in one document
  crudql graphql 'mutation { createUser(id: "3", name: "Carol", age: 28) { id } }'

  # Use variables
  crudql graphql -v '{"id": "1"}' 'query GetUser($id: ID!) { user(id: $id) { name } }'

  # Read from stdin
  echo '{ users { id name } }' | crudql graphql

  # Print the schema
  crudql graphql --schema`,
	Args: func(cmd *cobra.Command, args []string) error {
		if querySchemaOnly {
			return nil
		}
		// Allow 0 args if stdin has data, or exactly 1 arg
		if len(args) > 1 {
			return fmt.Errorf("accepts at most 1 argument (the GraphQL query)")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if querySchemaOnly {
			return printSchema()
		}

		var query string
		if len(args) == 1 {
			query = args[0]
		} else {
			stdinQuery, err := readFromStdin()
			if err != nil {
				return err
			}
			if stdinQuery == "" {
				return fmt.Errorf("no query provided (pass as argument or pipe to stdin)")
			}
			query = stdinQuery
		}

		var variables map[string]any
		if queryVariables != "" {
			if err := json.Unmarshal([]byte(queryVariables), &variables); err != nil {
				return fmt.Errorf("invalid variables JSON: %w", err)
			}
		}

		result, err := executeQuery(query, variables, queryOperation)
		if err != nil {
			return err
		}

		if queryJSON {
			fmt.Println(string(result))
		} else {
			prettyPrint(result)
		}

		return nil
	},
}

// readFromStdin reads the query from stdin if data is available.
func readFromStdin() (string, error) {
	// A terminal means nothing was piped in
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// executeQuery runs a GraphQL document against the current core.
// On success, it returns just the data portion of the response.
func executeQuery(query string, variables map[string]any, operationName string) ([]byte, error) {
	schema, err := newSchema()
	if err != nil {
		return nil, err
	}
	return schema.Execute(context.Background(), query, operationName, variables)
}

// prettyPrint outputs indented JSON, colorized when stdout is a terminal.
func prettyPrint(data []byte) {
	out := pretty.Pretty(data)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		out = pretty.Color(out, nil)
	}
	fmt.Print(string(out))
}

// printSchema outputs the GraphQL schema.
func printSchema() error {
	s, err := GetGraphQLSchema()
	if err != nil {
		return err
	}
	fmt.Print(s)
	return nil
}

// GetGraphQLSchema returns the formatted SDL of the configured schema variant.
func GetGraphQLSchema() (string, error) {
	schema, err := newSchema()
	if err != nil {
		return "", err
	}
	return schema.String(), nil
}

func init() {
	graphqlCmd.Flags().BoolVar(&queryJSON, "json", false, "Output raw JSON (no formatting)")
	graphqlCmd.Flags().StringVarP(&queryVariables, "variables", "v", "", "Query variables as JSON string")
	graphqlCmd.Flags().StringVarP(&queryOperation, "operation", "o", "", "Operation name (for multi-operation documents)")
	graphqlCmd.Flags().BoolVar(&querySchemaOnly, "schema", false, "Print the GraphQL schema and exit")
	rootCmd.AddCommand(graphqlCmd)
}
