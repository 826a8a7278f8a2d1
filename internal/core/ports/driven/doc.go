// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RecipeAPI: Extracts recipes from source URLs and analyses nutrition/taste
//   - CuisineClassifier: Infers a cuisine label from a title and ingredients
//   - ReferenceStore: Searches and creates ingredient and cuisine entities
//   - PageStore: Creates and patches recipe pages
//   - ConfigStore: Application configuration
//
// The document store (Notion) is the only durable state. The in-memory
// ReferenceStore and PageStore exist for dry runs and tests.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
