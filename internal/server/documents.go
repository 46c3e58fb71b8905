package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/tradedesk/internal/invoice/domain"
	"github.com/smallbiznis/tradedesk/internal/printout"
	proformadomain "github.com/smallbiznis/tradedesk/internal/proformainvoice/domain"
	"github.com/smallbiznis/tradedesk/internal/providers/pdf"
	"github.com/smallbiznis/tradedesk/internal/providers/spreadsheet"
	quotationdomain "github.com/smallbiznis/tradedesk/internal/quotation/domain"
	"github.com/smallbiznis/tradedesk/pkg/db/pagination"
)

const exportPageLimit = 100

func (s *Server) quotationResource() resource[quotationdomain.CreateRequest, quotationdomain.UpdateRequest] {
	svc := s.quotationSvc
	return resource[quotationdomain.CreateRequest, quotationdomain.UpdateRequest]{
		create: func(ctx context.Context, req quotationdomain.CreateRequest) (any, error) {
			return svc.Create(ctx, req)
		},
		list: func(c *gin.Context) (any, error) {
			q := bindListQuery(c)
			return svc.List(c.Request.Context(), quotationdomain.ListRequest{
				Page:   q.Page,
				Limit:  q.Limit,
				Search: q.Search,
			})
		},
		get: func(ctx context.Context, id snowflake.ID) (any, error) {
			return svc.Get(ctx, id)
		},
		update: func(ctx context.Context, id snowflake.ID, req quotationdomain.UpdateRequest) (any, error) {
			return svc.Update(ctx, id, req)
		},
		remove: svc.Delete,
	}
}

func (s *Server) invoiceResource() resource[invoicedomain.CreateRequest, invoicedomain.UpdateRequest] {
	svc := s.invoiceSvc
	return resource[invoicedomain.CreateRequest, invoicedomain.UpdateRequest]{
		create: func(ctx context.Context, req invoicedomain.CreateRequest) (any, error) {
			return svc.Create(ctx, req)
		},
		list: func(c *gin.Context) (any, error) {
			req, err := bindInvoiceListQuery(c)
			if err != nil {
				return nil, err
			}
			return svc.List(c.Request.Context(), req)
		},
		get: func(ctx context.Context, id snowflake.ID) (any, error) {
			return svc.Get(ctx, id)
		},
		update: func(ctx context.Context, id snowflake.ID, req invoicedomain.UpdateRequest) (any, error) {
			return svc.Update(ctx, id, req)
		},
		remove: svc.Delete,
	}
}

func (s *Server) proformaInvoiceResource() resource[proformadomain.CreateRequest, proformadomain.UpdateRequest] {
	svc := s.proformaInvoiceSvc
	return resource[proformadomain.CreateRequest, proformadomain.UpdateRequest]{
		create: func(ctx context.Context, req proformadomain.CreateRequest) (any, error) {
			return svc.Create(ctx, req)
		},
		list: func(c *gin.Context) (any, error) {
			req, err := bindInvoiceListQuery(c)
			if err != nil {
				return nil, err
			}
			return svc.List(c.Request.Context(), req)
		},
		get: func(ctx context.Context, id snowflake.ID) (any, error) {
			return svc.Get(ctx, id)
		},
		update: func(ctx context.Context, id snowflake.ID, req proformadomain.UpdateRequest) (any, error) {
			return svc.Update(ctx, id, req)
		},
		remove: svc.Delete,
	}
}

func bindInvoiceListQuery(c *gin.Context) (invoicedomain.ListRequest, error) {
	q := bindListQuery(c)
	quotationID, err := parseOptionalSnowflakeID(c.Query("quotationId"))
	if err != nil {
		return invoicedomain.ListRequest{}, newValidationError("quotationId", "invalid", "quotationId must be a valid id")
	}
	salesBroker, err := parseOptionalBool(c.Query("salesBroker"))
	if err != nil {
		return invoicedomain.ListRequest{}, newValidationError("salesBroker", "invalid", "salesBroker must be a boolean value")
	}
	isProforma, err := parseOptionalBool(c.Query("isProformaInvoice"))
	if err != nil {
		return invoicedomain.ListRequest{}, newValidationError("isProformaInvoice", "invalid", "isProformaInvoice must be a boolean value")
	}
	return invoicedomain.ListRequest{
		Page:              q.Page,
		Limit:             q.Limit,
		Search:            q.Search,
		QuotationID:       quotationID,
		SalesBroker:       salesBroker,
		IsProformaInvoice: isProforma,
		DateFrom:          strings.TrimSpace(c.Query("dateFrom")),
		DateTo:            strings.TrimSpace(c.Query("dateTo")),
	}, nil
}

func (s *Server) NextQuotationNumber(c *gin.Context) {
	number, err := s.quotationSvc.NextNumber(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"quotationNumber": number}})
}

func (s *Server) QuotationPDF(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	detail, err := s.quotationSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writePDF(c, "quotation-"+detail.QuotationNo, printout.Quotation(detail))
}

func (s *Server) InvoicePDF(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	detail, err := s.invoiceSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writePDF(c, "invoice-"+detail.PINo, printout.Invoice(detail))
}

func (s *Server) ProformaInvoicePDF(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	detail, err := s.proformaInvoiceSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writePDF(c, "proforma-invoice-"+detail.PINo, printout.ProformaInvoice(detail))
}

func (s *Server) ExportQuotations(c *gin.Context) {
	q := bindListQuery(c)
	items, err := collectPages(func(page int) ([]quotationdomain.Quotation, pagination.Meta, error) {
		resp, err := s.quotationSvc.List(c.Request.Context(), quotationdomain.ListRequest{
			Page:   page,
			Limit:  exportPageLimit,
			Search: q.Search,
		})
		return resp.Data, resp.Meta, err
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeSheet(c, "quotations", printout.QuotationSheet(items))
}

func (s *Server) ExportInvoices(c *gin.Context) {
	req, err := bindInvoiceListQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items, err := collectPages(func(page int) ([]invoicedomain.Invoice, pagination.Meta, error) {
		req.Page, req.Limit = page, exportPageLimit
		resp, err := s.invoiceSvc.List(c.Request.Context(), req)
		return resp.Data, resp.Meta, err
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeSheet(c, "invoices", printout.InvoiceSheet(items))
}

func (s *Server) ExportProformaInvoices(c *gin.Context) {
	req, err := bindInvoiceListQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items, err := collectPages(func(page int) ([]proformadomain.ProformaInvoice, pagination.Meta, error) {
		req.Page, req.Limit = page, exportPageLimit
		resp, err := s.proformaInvoiceSvc.List(c.Request.Context(), req)
		return resp.Data, resp.Meta, err
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.writeSheet(c, "proforma-invoices", printout.ProformaInvoiceSheet(items))
}

// collectPages walks a listing until the reported last page.
func collectPages[T any](fetch func(page int) ([]T, pagination.Meta, error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		items, meta, err := fetch(page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if len(items) == 0 || page >= meta.TotalPages {
			return all, nil
		}
	}
}

func (s *Server) writePDF(c *gin.Context, name string, doc pdf.Document) {
	body, err := s.renderer.Render(c.Request.Context(), doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachmentName(name)+".pdf"))
	c.Data(http.StatusOK, "application/pdf", body)
}

func (s *Server) writeSheet(c *gin.Context, name string, sheet spreadsheet.Sheet) {
	body, err := s.sheets.Write(c.Request.Context(), sheet)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	c.Data(http.StatusOK, spreadsheet.ContentType, body)
}

// attachmentName keeps document numbers readable while dropping path
// separators and quotes.
func attachmentName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ' ':
			return '-'
		}
		return r
	}, name)
}
