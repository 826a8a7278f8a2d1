// Package notion provides the document-store adapters over the Notion API.
//
// Reference lookups and creates go through github.com/jomei/notionapi.
// Recipe pages are written as raw JSON because the SDK cannot express a
// null number property, which is how unknown quantities are left empty.
// Both share one HTTP client that authenticates with the integration secret,
// pins the Notion-Version header and throttles every request.
package notion
