package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"quickai-backend/internal/middleware"
	"quickai-backend/internal/models"
	"quickai-backend/internal/quota"
	"quickai-backend/internal/resume"
	"quickai-backend/internal/textgen"
)

const defaultArticleTokens = 800

// Upstream adapter and collaborator contracts, narrowed to what the
// handlers actually call so tests can inject fakes and spies.

type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

type ImageGenerator interface {
	TextToImage(ctx context.Context, prompt string) ([]byte, error)
}

type GeneratedImageStore interface {
	UploadGeneratedImage(userID string, data []byte) (storagePath, publicURL string, err error)
	DeleteFile(storagePath string) error
}

type MediaStore interface {
	UploadImage(ctx context.Context, data []byte) (publicID, url string, err error)
	UploadBackgroundRemoval(ctx context.Context, data []byte) (publicID, url string, err error)
	ObjectRemovalURL(publicID, object string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

type ResumeParser interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
}

type AIHandler struct {
	text    TextGenerator
	images  ImageGenerator
	storage GeneratedImageStore
	media   MediaStore
	resumes ResumeParser
	store   CreationStore
	ledger  quota.UsageLedger

	exposeUpstreamErrors bool
}

func NewAIHandler(
	text TextGenerator,
	images ImageGenerator,
	storage GeneratedImageStore,
	media MediaStore,
	resumes ResumeParser,
	store CreationStore,
	ledger quota.UsageLedger,
	exposeUpstreamErrors bool,
) *AIHandler {
	return &AIHandler{
		text:                 text,
		images:               images,
		storage:              storage,
		media:                media,
		resumes:              resumes,
		store:                store,
		ledger:               ledger,
		exposeUpstreamErrors: exposeUpstreamErrors,
	}
}

// capability describes one AI endpoint to the shared pipeline.
type capability struct {
	creationType string
	// failureMessage is returned to the caller on upstream failure when
	// upstream error text is not exposed.
	failureMessage string
}

// invokeResult is what an adapter closure hands back: the content to
// persist and an optional compensating action run if persistence fails
// (deleting media that was already uploaded upstream).
type invokeResult struct {
	content string
	cleanup func()
}

// admit resolves the caller and applies the quota gate. Every endpoint
// calls it before touching the payload, so a blocked caller always gets
// the gate message regardless of what they sent.
func (h *AIHandler) admit(c *gin.Context, premiumOnly bool) (string, quota.UsageState, bool) {
	userID, state, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.Fail("user not authenticated"))
		return "", quota.UsageState{}, false
	}

	if err := quota.Gate(state, premiumOnly); err != nil {
		c.JSON(http.StatusOK, models.Fail(gateMessage(err)))
		return "", quota.UsageState{}, false
	}

	return userID, state, true
}

// run executes an admitted request: upstream call → persist → usage
// increment. Side effects are strictly ordered; there is no increment
// without a persisted creation and no persistence without upstream
// success.
func (h *AIHandler) run(c *gin.Context, cp capability, userID string, state quota.UsageState, prompt string, publish bool, invoke func(ctx context.Context) (invokeResult, error)) {
	result, err := invoke(c.Request.Context())
	if err != nil {
		log.Printf("%s: upstream call failed: %v", cp.creationType, err)
		c.JSON(http.StatusOK, models.Fail(h.upstreamMessage(cp, err)))
		return
	}

	if _, err := h.store.CreateCreation(userID, prompt, result.content, cp.creationType, publish); err != nil {
		log.Printf("%s: failed to persist creation for user %s: %v", cp.creationType, userID, err)
		if result.cleanup != nil {
			result.cleanup()
		}
		c.JSON(http.StatusOK, models.Fail("failed to save creation"))
		return
	}

	if !state.Premium() {
		if err := h.ledger.Increment(c.Request.Context(), userID); err != nil {
			// The creation is already saved; the caller keeps their result.
			log.Printf("%s: failed to increment free usage for user %s: %v", cp.creationType, userID, err)
		}
	}

	c.JSON(http.StatusOK, models.OK(result.content))
}

func gateMessage(err error) string {
	if err == quota.ErrPremiumRequired {
		return "This feature is only available for premium subscriptions"
	}
	return "Limit reached. Upgrade to continue."
}

func (h *AIHandler) upstreamMessage(cp capability, err error) string {
	if h.exposeUpstreamErrors {
		return err.Error()
	}
	return cp.failureMessage
}

// GenerateArticle godoc
// @Summary     Generate an article
// @Description Generates an article from a prompt with a caller-supplied token budget. Free-tier eligible (10 free calls).
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateArticleRequest true "Prompt and length"
// @Success     200 {object} models.Envelope
// @Router      /api/ai/generate-article [post]
func (h *AIHandler) GenerateArticle(c *gin.Context) {
	userID, state, ok := h.admit(c, false)
	if !ok {
		return
	}

	var req models.GenerateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, models.Fail("invalid request body"))
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusOK, models.Fail("prompt is required"))
		return
	}
	length := req.Length
	if length <= 0 {
		length = defaultArticleTokens
	}

	cp := capability{
		creationType:   models.TypeArticle,
		failureMessage: "article generation failed, please try again",
	}
	h.run(c, cp, userID, state, req.Prompt, false, func(ctx context.Context) (invokeResult, error) {
		content, err := h.text.Generate(ctx, req.Prompt, length)
		return invokeResult{content: content}, err
	})
}

// GenerateBlogTitle godoc
// @Summary     Generate blog titles
// @Description Generates blog title suggestions for a topic. Free-tier eligible (10 free calls).
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateBlogTitleRequest true "Topic prompt"
// @Success     200 {object} models.Envelope
// @Router      /api/ai/generate-blog-title [post]
func (h *AIHandler) GenerateBlogTitle(c *gin.Context) {
	userID, state, ok := h.admit(c, false)
	if !ok {
		return
	}

	var req models.GenerateBlogTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, models.Fail("invalid request body"))
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusOK, models.Fail("prompt is required"))
		return
	}

	cp := capability{
		creationType:   models.TypeBlogTitle,
		failureMessage: "blog title generation failed, please try again",
	}
	h.run(c, cp, userID, state, req.Prompt, false, func(ctx context.Context) (invokeResult, error) {
		content, err := h.text.Generate(ctx, req.Prompt, textgen.BlogTitleMaxTokens)
		return invokeResult{content: content}, err
	})
}

// GenerateImage godoc
// @Summary     Generate an image
// @Description Generates an image from a prompt, stores it, and returns the public URL. Premium only.
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.GenerateImageRequest true "Prompt and publish flag"
// @Success     200 {object} models.Envelope
// @Router      /api/ai/generate-image [post]
func (h *AIHandler) GenerateImage(c *gin.Context) {
	userID, state, ok := h.admit(c, true)
	if !ok {
		return
	}

	var req models.GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, models.Fail("invalid request body"))
		return
	}
	if req.Prompt == "" {
		c.JSON(http.StatusOK, models.Fail("prompt is required"))
		return
	}

	cp := capability{
		creationType:   models.TypeImage,
		failureMessage: "image generation failed, please try again",
	}
	h.run(c, cp, userID, state, req.Prompt, req.Publish, func(ctx context.Context) (invokeResult, error) {
		data, err := h.images.TextToImage(ctx, req.Prompt)
		if err != nil {
			return invokeResult{}, err
		}
		storagePath, publicURL, err := h.storage.UploadGeneratedImage(userID, data)
		if err != nil {
			return invokeResult{}, err
		}
		return invokeResult{
			content: publicURL,
			cleanup: func() {
				if err := h.storage.DeleteFile(storagePath); err != nil {
					log.Printf("image: failed to clean up %s: %v", storagePath, err)
				}
			},
		}, nil
	})
}

// RemoveImageBackground godoc
// @Summary     Remove image background
// @Description Uploads the image to the media store with a background-removal transformation and returns the transformed URL. Premium only.
// @Tags        ai
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       image formData file true "Image to process"
// @Success     200 {object} models.Envelope
// @Router      /api/ai/remove-image-background [post]
func (h *AIHandler) RemoveImageBackground(c *gin.Context) {
	userID, state, ok := h.admit(c, true)
	if !ok {
		return
	}

	data, ok := h.readUpload(c, "image", "No image uploaded", 0)
	if !ok {
		return
	}

	cp := capability{
		creationType:   models.TypeImage,
		failureMessage: "background removal failed, please try again",
	}
	h.run(c, cp, userID, state, "Remove background from image", false, func(ctx context.Context) (invokeResult, error) {
		publicID, url, err := h.media.UploadBackgroundRemoval(ctx, data)
		if err != nil {
			return invokeResult{}, err
		}
		return invokeResult{
			content: url,
			cleanup: h.destroyAsset(publicID),
		}, nil
	})
}

// RemoveImageObject godoc
// @Summary     Remove an object from an image
// @Description Uploads the image and returns a derived URL with the named object generatively removed. Premium only.
// @Tags        ai
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       image formData file true "Image to process"
// @Param       object formData string true "Name of the object to remove"
// @Success     200 {object} models.Envelope
// @Router      /api/ai/remove-image-object [post]
func (h *AIHandler) RemoveImageObject(c *gin.Context) {
	userID, state, ok := h.admit(c, true)
	if !ok {
		return
	}

	object := c.PostForm("object")
	if object == "" {
		c.JSON(http.StatusOK, models.Fail("object name is required"))
		return
	}
	data, ok := h.readUpload(c, "image", "No image uploaded", 0)
	if !ok {
		return
	}

	cp := capability{
		creationType:   models.TypeImage,
		failureMessage: "object removal failed, please try again",
	}
	h.run(c, cp, userID, state, fmt.Sprintf("Removed %s from image", object), false, func(ctx context.Context) (invokeResult, error) {
		publicID, _, err := h.media.UploadImage(ctx, data)
		if err != nil {
			return invokeResult{}, err
		}
		url, err := h.media.ObjectRemovalURL(publicID, object)
		if err != nil {
			// The asset is already stored; don't leave it orphaned.
			h.destroyAsset(publicID)()
			return invokeResult{}, err
		}
		return invokeResult{
			content: url,
			cleanup: h.destroyAsset(publicID),
		}, nil
	})
}

// ResumeReview godoc
// @Summary     Review an uploaded resume
// @Description Extracts text from an uploaded PDF resume (max 5 MiB) and returns AI feedback. Premium only.
// @Tags        ai
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       resume formData file true "Resume PDF (max 5 MiB)"
// @Success     200 {object} models.Envelope
// @Router      /api/ai/resume-review [post]
func (h *AIHandler) ResumeReview(c *gin.Context) {
	userID, state, ok := h.admit(c, true)
	if !ok {
		return
	}

	data, ok := h.readUpload(c, "resume", "No resume file uploaded", resume.MaxUploadSize)
	if !ok {
		return
	}

	cp := capability{
		creationType:   models.TypeResumeReview,
		failureMessage: "resume review failed, please try again",
	}
	h.run(c, cp, userID, state, "Review the uploaded resume", false, func(ctx context.Context) (invokeResult, error) {
		text, err := h.resumes.ExtractText(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return invokeResult{}, err
		}
		content, err := h.text.Generate(ctx, resume.ReviewPrompt(text), textgen.ResumeReviewMaxTokens)
		return invokeResult{content: content}, err
	})
}

// readUpload fetches a required multipart file, enforcing maxSize before
// the file is even opened when a cap is given.
func (h *AIHandler) readUpload(c *gin.Context, field, missingMessage string, maxSize int64) ([]byte, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusOK, models.Fail(missingMessage))
		return nil, false
	}
	if maxSize > 0 && fileHeader.Size > maxSize {
		c.JSON(http.StatusOK, models.Fail(fmt.Sprintf("%s file size exceeds allowed size (%d MB)", field, maxSize>>20)))
		return nil, false
	}

	data, err := readMultipartFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusOK, models.Fail("failed to read uploaded file"))
		return nil, false
	}
	return data, true
}

func readMultipartFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

func (h *AIHandler) destroyAsset(publicID string) func() {
	return func() {
		if err := h.media.Destroy(context.Background(), publicID); err != nil {
			log.Printf("failed to clean up media asset %s: %v", publicID, err)
		}
	}
}
