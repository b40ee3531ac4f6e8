// Package directus implements the store interfaces over the CMS REST client.
//
// Query shaping lives here: the field projections, filters, and sort orders
// for each page and API operation. Public reads use the anonymous client and
// always filter on status; editor operations bind the caller's token.
package directus
