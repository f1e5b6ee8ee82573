package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

func documentsMapping() mapping.IndexMapping {
	doc := bleve.NewDocumentMapping()

	trusted := bleve.NewKeywordFieldMapping()
	trusted.Store = true
	doc.AddFieldMappingsAt("trustedFileName", trusted)

	untrusted := bleve.NewTextFieldMapping()
	untrusted.Store = true
	doc.AddFieldMappingsAt("untrustedFileName", untrusted)

	folderID := bleve.NewKeywordFieldMapping()
	folderID.Store = true
	doc.AddFieldMappingsAt("folderId", folderID)

	uploaded := bleve.NewDateTimeFieldMapping()
	uploaded.Store = true
	doc.AddFieldMappingsAt("uploadDateTime", uploaded)

	// attachment.content хранится целиком: подсветке нужен исходный текст
	attachment := bleve.NewDocumentMapping()
	content := bleve.NewTextFieldMapping()
	content.Store = true
	attachment.AddFieldMappingsAt("content", content)
	doc.AddSubDocumentMapping("attachment", attachment)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

func foldersMapping() mapping.IndexMapping {
	folder := bleve.NewDocumentMapping()

	name := bleve.NewTextFieldMapping()
	name.Store = true
	folder.AddFieldMappingsAt("name", name)

	description := bleve.NewTextFieldMapping()
	description.Store = true
	folder.AddFieldMappingsAt("description", description)

	bucket := bleve.NewKeywordFieldMapping()
	bucket.Store = true
	folder.AddFieldMappingsAt("bucket", bucket)

	createdAt := bleve.NewDateTimeFieldMapping()
	createdAt.Store = true
	folder.AddFieldMappingsAt("createdAt", createdAt)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = folder
	return m
}
