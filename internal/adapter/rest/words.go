package rest

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/spellnet/internal/entity"
	"github.com/eslsoft/spellnet/internal/repository"
	"github.com/eslsoft/spellnet/internal/usecase/transfer"
)

const (
	totalCountHeader = "X-Total-Count"
	uploadField      = "csvfile"
	exportFilename   = "word_export.csv"
)

type wordRequest struct {
	EnglishWord       string `json:"english_word"`
	ChineseDefinition string `json:"chinese_definition"`
	ExampleSentenceEN string `json:"example_sentence_en"`
	ExampleSentenceCN string `json:"example_sentence_cn"`
	WeekTag           string `json:"week_tag"`
}

func (r wordRequest) toEntity(id int64) *entity.Word {
	return &entity.Word{
		ID:                id,
		EnglishWord:       r.EnglishWord,
		ChineseDefinition: r.ChineseDefinition,
		ExampleSentenceEN: r.ExampleSentenceEN,
		ExampleSentenceCN: r.ExampleSentenceCN,
		WeekTag:           r.WeekTag,
	}
}

type importResponse struct {
	Message string `json:"message"`
	*transfer.ImportResult
}

// listWords answers with a bare JSON array; the unpaged total travels in the
// X-Total-Count header.
func (h *Handler) listWords(c *gin.Context) {
	query := &repository.ListWordQuery{
		Pagination: repository.Pagination{
			PageNo:   queryInt32(c, "page"),
			PageSize: queryInt32(c, "page_size"),
		},
		FilterOrder: repository.FilterOrder{
			Filter:  c.Query("filter"),
			OrderBy: c.Query("order_by"),
		},
		Tag: c.Query("tag"),
	}

	items, total, err := h.words.List(c.Request.Context(), h.userID, query)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Header(totalCountHeader, strconv.FormatInt(total, 10))
	if items == nil {
		items = []*entity.WordListItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) createWord(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, entity.ErrInvalidWordText)
		return
	}
	word, err := h.words.Create(c.Request.Context(), req.toEntity(0))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, word)
}

func (h *Handler) getWord(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	word, err := h.words.Get(c.Request.Context(), id)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

func (h *Handler) updateWord(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.abortWithError(c, entity.ErrInvalidWordText)
		return
	}
	word, err := h.words.Update(c.Request.Context(), req.toEntity(id))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, word)
}

func (h *Handler) deleteWord(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if err := h.words.Delete(c.Request.Context(), id); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "单词删除成功"})
}

func (h *Handler) exportWords(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.transfer.Export(c.Request.Context(), &buf); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *Handler) importWords(c *gin.Context) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}
	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, messageResponse{Message: "上传文件过大"})
			return
		}
		badRequest(c, "请选择一个 CSV 文件上传")
		return
	}
	format, err := transfer.DetectFormat(header.Filename)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	defer file.Close()

	result, err := h.transfer.Import(c.Request.Context(), file, format)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, importResponse{
		Message:      "导入完成",
		ImportResult: result,
	})
}

// queryInt32 reads a non-negative integer query parameter. Missing or
// malformed values read as zero.
func queryInt32(c *gin.Context, key string) int32 {
	v, err := strconv.ParseInt(c.Query(key), 10, 32)
	if err != nil || v < 0 {
		return 0
	}
	return int32(v)
}
