package handlers

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/conecta-social/conecta-server/backend/internal/models"
	"github.com/conecta-social/conecta-server/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the handler tests.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
	// follows backs the relation filters of ListNetwork, nil when a test
	// does not care about the graph
	follows *fakeFollowRepo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) isFollowing(followerID, followingID uint) bool {
	return r.follows != nil && r.follows.edges[followEdge{followerID, followingID}]
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email")
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByRefreshToken(token string) (*models.User, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}
	for _, u := range r.users {
		if u.RefreshToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountUsers() (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) ListNetwork(q repositories.NetworkQuery) ([]models.UserSummary, int64, error) {
	var rows []models.UserSummary
	for _, u := range r.users {
		switch q.Relation {
		case "followers":
			if !r.isFollowing(u.ID, q.UserID) {
				continue
			}
		case "following":
			if !r.isFollowing(q.UserID, u.ID) {
				continue
			}
		case "all":
			if u.ID == q.UserID {
				continue
			}
		case "not-following":
			if u.ID == q.UserID || r.isFollowing(q.UserID, u.ID) {
				continue
			}
		default:
			return nil, 0, fmt.Errorf("unknown relation: %s", q.Relation)
		}
		if q.Keyword != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(q.Keyword)) {
			continue
		}
		rows = append(rows, models.UserSummary{ID: u.ID, Name: u.Name})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, int64(len(rows)), nil
}

func (r *fakeUserRepo) ListRecentNotFollowing(userID uint, limit int) ([]models.UserSummary, error) {
	var rows []models.UserSummary
	for _, u := range r.users {
		if u.ID == userID {
			continue
		}
		rows = append(rows, models.UserSummary{ID: u.ID, Name: u.Name})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type followEdge struct {
	follower  uint
	following uint
}

type fakeFollowRepo struct {
	edges map[followEdge]bool
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: make(map[followEdge]bool)}
}

func (r *fakeFollowRepo) CreateFollow(followerID, followingID uint) error {
	edge := followEdge{followerID, followingID}
	if r.edges[edge] {
		return fmt.Errorf("duplicate edge")
	}
	r.edges[edge] = true
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(followerID, followingID uint) error {
	edge := followEdge{followerID, followingID}
	if !r.edges[edge] {
		return fmt.Errorf("follow relationship not found")
	}
	delete(r.edges, edge)
	return nil
}

func (r *fakeFollowRepo) IsFollowing(followerID, followingID uint) (bool, error) {
	return r.edges[followEdge{followerID, followingID}], nil
}

func (r *fakeFollowRepo) GetFollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	for edge := range r.edges {
		if edge.following == userID {
			ids = append(ids, edge.follower)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeFollowRepo) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	for edge := range r.edges {
		if edge.follower == userID {
			ids = append(ids, edge.following)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeFollowRepo) CountFollowers(userID uint) (int64, error) {
	ids, _ := r.GetFollowerIDs(userID)
	return int64(len(ids)), nil
}

func (r *fakeFollowRepo) CountFollowing(userID uint) (int64, error) {
	ids, _ := r.GetFollowingIDs(userID)
	return int64(len(ids)), nil
}

func (r *fakeFollowRepo) DeleteByUser(userID uint) error {
	for edge := range r.edges {
		if edge.follower == userID || edge.following == userID {
			delete(r.edges, edge)
		}
	}
	return nil
}

type fakePostRepo struct {
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}
	if post, ok := r.posts[objID]; ok {
		copied := *post
		return &copied, nil
	}
	return nil, fmt.Errorf("post not found")
}

func (r *fakePostRepo) GetPostsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	var posts []models.Post
	for _, id := range ids {
		if post, ok := r.posts[id]; ok {
			posts = append(posts, *post)
		}
	}
	return posts, nil
}

func (r *fakePostRepo) GetPostsByAuthor(_ context.Context, authorID uint, _, _ int64) ([]models.Post, error) {
	var posts []models.Post
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			posts = append(posts, *post)
		}
	}
	return posts, nil
}

func (r *fakePostRepo) CountPostsByAuthor(_ context.Context, authorID uint) (int64, error) {
	posts, _ := r.GetPostsByAuthor(context.Background(), authorID, 0, 0)
	return int64(len(posts)), nil
}

func (r *fakePostRepo) SamplePosts(_ context.Context, size int64) ([]models.Post, error) {
	var posts []models.Post
	for _, post := range r.posts {
		if int64(len(posts)) >= size {
			break
		}
		posts = append(posts, *post)
	}
	return posts, nil
}

func (r *fakePostRepo) UpdatePost(_ context.Context, id string, post *models.Post) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	if _, ok := r.posts[objID]; !ok {
		return fmt.Errorf("post not found")
	}
	copied := *post
	copied.ID = objID
	r.posts[objID] = &copied
	return nil
}

func (r *fakePostRepo) DeletePost(_ context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	if _, ok := r.posts[objID]; !ok {
		return fmt.Errorf("post not found")
	}
	delete(r.posts, objID)
	return nil
}

func (r *fakePostRepo) DeletePostsByAuthor(_ context.Context, authorID uint) ([]primitive.ObjectID, error) {
	var ids []primitive.ObjectID
	for id, post := range r.posts {
		if post.AuthorID == authorID {
			ids = append(ids, id)
			delete(r.posts, id)
		}
	}
	return ids, nil
}

type fakeFeedRepo struct {
	entries []models.FeedEntry
	seq     int64
}

func newFakeFeedRepo() *fakeFeedRepo { return &fakeFeedRepo{} }

func (r *fakeFeedRepo) AddEntries(_ context.Context, userIDs []uint, postID primitive.ObjectID) error {
	r.seq++
	for _, userID := range userIDs {
		r.entries = append(r.entries, models.FeedEntry{
			UserID: userID,
			PostID: postID,
			Seq:    r.seq,
		})
	}
	return nil
}

func (r *fakeFeedRepo) GetPage(_ context.Context, userID uint, page, limit int64) ([]models.FeedEntry, int64, error) {
	var all []models.FeedEntry
	for _, entry := range r.entries {
		if entry.UserID == userID {
			all = append(all, entry)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seq > all[j].Seq })

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *fakeFeedRepo) RemovePost(_ context.Context, postID primitive.ObjectID) error {
	kept := r.entries[:0]
	for _, entry := range r.entries {
		if entry.PostID != postID {
			kept = append(kept, entry)
		}
	}
	r.entries = kept
	return nil
}

func (r *fakeFeedRepo) RemovePosts(ctx context.Context, postIDs []primitive.ObjectID) error {
	for _, id := range postIDs {
		if err := r.RemovePost(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeFeedRepo) RemoveUser(_ context.Context, userID uint) error {
	kept := r.entries[:0]
	for _, entry := range r.entries {
		if entry.UserID != userID {
			kept = append(kept, entry)
		}
	}
	r.entries = kept
	return nil
}

type likeKey struct {
	postID string
	userID uint
}

type fakeLikeRepo struct {
	likes map[likeKey]bool
}

func newFakeLikeRepo() *fakeLikeRepo { return &fakeLikeRepo{likes: make(map[likeKey]bool)} }

func (r *fakeLikeRepo) CreateLike(like *models.Like) error {
	key := likeKey{like.PostID, like.UserID}
	if r.likes[key] {
		return fmt.Errorf("duplicate like")
	}
	r.likes[key] = true
	return nil
}

func (r *fakeLikeRepo) DeleteLike(postID string, userID uint) error {
	key := likeKey{postID, userID}
	if !r.likes[key] {
		return gorm.ErrRecordNotFound
	}
	delete(r.likes, key)
	return nil
}

func (r *fakeLikeRepo) HasUserLikedPost(postID string, userID uint) (bool, error) {
	return r.likes[likeKey{postID, userID}], nil
}

func (r *fakeLikeRepo) GetLikesCountByPostID(postID string) (int64, error) {
	var count int64
	for key := range r.likes {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

func (r *fakeLikeRepo) DeleteByPost(postID string) error {
	for key := range r.likes {
		if key.postID == postID {
			delete(r.likes, key)
		}
	}
	return nil
}

func (r *fakeLikeRepo) DeleteByUser(userID uint) error {
	for key := range r.likes {
		if key.userID == userID {
			delete(r.likes, key)
		}
	}
	return nil
}

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uint]*models.Comment), nextID: 1}
}

func (r *fakeCommentRepo) CreateComment(comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	if comment, ok := r.comments[id]; ok {
		copied := *comment
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommentRepo) GetCommentsByPost(postID string, page, limit int) ([]models.Comment, int64, error) {
	var all []models.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID {
			all = append(all, *comment)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeCommentRepo) UpdateComment(id, userID uint, content string) error {
	comment, ok := r.comments[id]
	if !ok || comment.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	comment.Content = content
	return nil
}

func (r *fakeCommentRepo) DeleteComment(id, userID uint) error {
	comment, ok := r.comments[id]
	if !ok || comment.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) DeleteByPost(postID string) error {
	for id, comment := range r.comments {
		if comment.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *fakeCommentRepo) DeleteByUser(userID uint) error {
	for id, comment := range r.comments {
		if comment.UserID == userID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *fakeCommentRepo) CountByPost(postID string) (int64, error) {
	_, total, err := r.GetCommentsByPost(postID, 1, len(r.comments)+1)
	return total, err
}

type fakeConversationRepo struct {
	conversations map[primitive.ObjectID]*models.Conversation
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[primitive.ObjectID]*models.Conversation)}
}

func (r *fakeConversationRepo) FindByParticipants(_ context.Context, a, b uint) (*models.Conversation, error) {
	for _, conversation := range r.conversations {
		if len(conversation.Participants) != 2 {
			continue
		}
		p0, p1 := conversation.Participants[0], conversation.Participants[1]
		if (p0 == a && p1 == b) || (p0 == b && p1 == a) {
			copied := *conversation
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeConversationRepo) CreateConversation(_ context.Context, a, b uint, firstMessageID primitive.ObjectID) (*models.Conversation, error) {
	conversation := &models.Conversation{
		ID:           primitive.NewObjectID(),
		Participants: []uint{a, b},
		Messages:     []primitive.ObjectID{firstMessageID},
	}
	r.conversations[conversation.ID] = conversation
	copied := *conversation
	return &copied, nil
}

func (r *fakeConversationRepo) AppendMessage(_ context.Context, conversationID, messageID primitive.ObjectID) error {
	conversation, ok := r.conversations[conversationID]
	if !ok {
		return fmt.Errorf("conversation not found")
	}
	conversation.Messages = append(conversation.Messages, messageID)
	return nil
}

func (r *fakeConversationRepo) GetConversationByID(_ context.Context, id string) (*models.Conversation, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid conversation ID format: %w", err)
	}
	if conversation, ok := r.conversations[objID]; ok {
		copied := *conversation
		return &copied, nil
	}
	return nil, fmt.Errorf("conversation not found")
}

func (r *fakeConversationRepo) ListByUser(_ context.Context, userID uint) ([]models.Conversation, error) {
	var result []models.Conversation
	for _, conversation := range r.conversations {
		for _, participant := range conversation.Participants {
			if participant == userID {
				result = append(result, *conversation)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeConversationRepo) DeleteByParticipant(_ context.Context, userID uint) error {
	for id, conversation := range r.conversations {
		for _, participant := range conversation.Participants {
			if participant == userID {
				delete(r.conversations, id)
				break
			}
		}
	}
	return nil
}

type fakeMessageRepo struct {
	messages map[primitive.ObjectID]*models.Message
	order    []primitive.ObjectID
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[primitive.ObjectID]*models.Message)}
}

func (r *fakeMessageRepo) CreateMessage(_ context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	copied := *message
	r.messages[message.ID] = &copied
	r.order = append(r.order, message.ID)
	return nil
}

func (r *fakeMessageRepo) GetMessagesByIDs(_ context.Context, ids []primitive.ObjectID, page, limit int64) ([]models.Message, int64, error) {
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var all []models.Message
	// newest first: walk insertion order backwards
	for i := len(r.order) - 1; i >= 0; i-- {
		if wanted[r.order[i]] {
			all = append(all, *r.messages[r.order[i]])
		}
	}

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *fakeMessageRepo) GetLatestByIDs(ctx context.Context, ids []primitive.ObjectID) (*models.Message, error) {
	messages, _, err := r.GetMessagesByIDs(ctx, ids, 1, 1)
	if err != nil || len(messages) == 0 {
		return nil, err
	}
	return &messages[0], nil
}

func (r *fakeMessageRepo) DeleteBySender(_ context.Context, userID uint) error {
	for id, message := range r.messages {
		if message.SenderID == userID {
			delete(r.messages, id)
		}
	}
	return nil
}

type fakeVacancyRepo struct {
	vacancies map[uint]*models.Vacancy
	nextID    uint
}

func newFakeVacancyRepo() *fakeVacancyRepo {
	return &fakeVacancyRepo{vacancies: make(map[uint]*models.Vacancy), nextID: 1}
}

func (r *fakeVacancyRepo) CreateVacancy(vacancy *models.Vacancy) error {
	vacancy.ID = r.nextID
	r.nextID++
	copied := *vacancy
	r.vacancies[vacancy.ID] = &copied
	return nil
}

func (r *fakeVacancyRepo) GetVacancyByID(id uint) (*models.Vacancy, error) {
	if vacancy, ok := r.vacancies[id]; ok {
		copied := *vacancy
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVacancyRepo) GetVacancyByExternalID(externalID string) (*models.Vacancy, error) {
	for _, vacancy := range r.vacancies {
		if vacancy.ExternalVacancyID == externalID {
			copied := *vacancy
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVacancyRepo) DeleteExternalVacancies() (int64, error) {
	var deleted int64
	for id, vacancy := range r.vacancies {
		if vacancy.ExternalVacancy {
			delete(r.vacancies, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeVacancyRepo) UpdateVacancy(vacancy *models.Vacancy) error {
	if _, ok := r.vacancies[vacancy.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *vacancy
	r.vacancies[vacancy.ID] = &copied
	return nil
}

func (r *fakeVacancyRepo) ReplaceSkills(vacancy *models.Vacancy, skills []models.Skill) error {
	stored, ok := r.vacancies[vacancy.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Skills = skills
	return nil
}

func (r *fakeVacancyRepo) DeleteVacancy(id uint) error {
	if _, ok := r.vacancies[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.vacancies, id)
	return nil
}

func (r *fakeVacancyRepo) ListVacancies(page, limit int, filters models.VacancyFilters, keyword string) ([]models.Vacancy, int64, error) {
	var all []models.Vacancy
	for _, vacancy := range r.vacancies {
		all = append(all, *vacancy)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, int64(len(all)), nil
}

func (r *fakeVacancyRepo) ListByAuthor(authorID uint, page, limit int) ([]models.Vacancy, int64, error) {
	var all []models.Vacancy
	for _, vacancy := range r.vacancies {
		if vacancy.AuthorID != nil && *vacancy.AuthorID == authorID {
			all = append(all, *vacancy)
		}
	}
	return all, int64(len(all)), nil
}

func (r *fakeVacancyRepo) DeleteByAuthor(authorID uint) error {
	for id, vacancy := range r.vacancies {
		if vacancy.AuthorID != nil && *vacancy.AuthorID == authorID {
			delete(r.vacancies, id)
		}
	}
	return nil
}

type applicationKey struct {
	candidateID uint
	vacancyID   uint
}

type fakeApplicationRepo struct {
	applications map[applicationKey]*models.Application
	nextID       uint
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[applicationKey]*models.Application), nextID: 1}
}

func (r *fakeApplicationRepo) CreateApplication(application *models.Application) error {
	key := applicationKey{application.CandidateID, application.VacancyID}
	if _, ok := r.applications[key]; ok {
		return fmt.Errorf("duplicate application")
	}
	application.ID = r.nextID
	r.nextID++
	copied := *application
	r.applications[key] = &copied
	return nil
}

func (r *fakeApplicationRepo) HasApplied(candidateID, vacancyID uint) (bool, error) {
	_, ok := r.applications[applicationKey{candidateID, vacancyID}]
	return ok, nil
}

func (r *fakeApplicationRepo) ListByCandidate(candidateID uint, page, limit int) ([]models.Application, int64, error) {
	var all []models.Application
	for key, application := range r.applications {
		if key.candidateID == candidateID {
			all = append(all, *application)
		}
	}
	return all, int64(len(all)), nil
}

func (r *fakeApplicationRepo) ListByVacancy(vacancyID uint, page, limit int) ([]models.Application, int64, error) {
	var all []models.Application
	for key, application := range r.applications {
		if key.vacancyID == vacancyID {
			all = append(all, *application)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeApplicationRepo) DeleteByVacancy(vacancyID uint) error {
	for key := range r.applications {
		if key.vacancyID == vacancyID {
			delete(r.applications, key)
		}
	}
	return nil
}

func (r *fakeApplicationRepo) DeleteByCandidate(candidateID uint) error {
	for key := range r.applications {
		if key.candidateID == candidateID {
			delete(r.applications, key)
		}
	}
	return nil
}

type ratingKey struct {
	communityID uint
	userID      uint
}

type fakeCommunityRepo struct {
	communities map[uint]*models.Community
	ratings     map[ratingKey]int
	nextID      uint
}

func newFakeCommunityRepo() *fakeCommunityRepo {
	return &fakeCommunityRepo{
		communities: make(map[uint]*models.Community),
		ratings:     make(map[ratingKey]int),
		nextID:      1,
	}
}

func (r *fakeCommunityRepo) CreateCommunity(community *models.Community) error {
	community.ID = r.nextID
	r.nextID++
	copied := *community
	r.communities[community.ID] = &copied
	return nil
}

func (r *fakeCommunityRepo) GetCommunityByID(id uint) (*models.Community, error) {
	if community, ok := r.communities[id]; ok {
		copied := *community
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommunityRepo) GetByFormattedLink(formattedLink string) (*models.Community, error) {
	for _, community := range r.communities {
		if community.FormattedLink == formattedLink {
			copied := *community
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCommunityRepo) UpdateCommunity(community *models.Community) error {
	if _, ok := r.communities[community.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *community
	r.communities[community.ID] = &copied
	return nil
}

func (r *fakeCommunityRepo) ReplaceSkills(community *models.Community, skills []models.Skill) error {
	stored, ok := r.communities[community.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Skills = skills
	return nil
}

func (r *fakeCommunityRepo) DeleteCommunity(id uint) error {
	if _, ok := r.communities[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.communities, id)
	for key := range r.ratings {
		if key.communityID == id {
			delete(r.ratings, key)
		}
	}
	return nil
}

func (r *fakeCommunityRepo) ListCommunities(page, limit int, filters models.CommunityFilters, keyword string) ([]models.Community, int64, error) {
	var all []models.Community
	for _, community := range r.communities {
		all = append(all, *community)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, int64(len(all)), nil
}

func (r *fakeCommunityRepo) RateCommunity(communityID, userID uint, rating int) error {
	key := ratingKey{communityID, userID}
	if _, ok := r.ratings[key]; ok {
		return repositories.ErrAlreadyRated
	}
	community, ok := r.communities[communityID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.ratings[key] = rating
	community.Rating += int64(rating)
	community.TotalRatings++
	return nil
}

func (r *fakeCommunityRepo) DeleteByAuthor(authorID uint) error {
	for id, community := range r.communities {
		if community.AuthorID == authorID {
			if err := r.DeleteCommunity(id); err != nil {
				return err
			}
		}
	}
	return nil
}

type fakeCatalogRepo struct {
	areas  map[uint]*models.ProfessionalArea
	skills map[uint]*models.Skill
	nextID uint
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		areas:  make(map[uint]*models.ProfessionalArea),
		skills: make(map[uint]*models.Skill),
		nextID: 1,
	}
}

func (r *fakeCatalogRepo) CreateProfessionalArea(area *models.ProfessionalArea) error {
	for _, existing := range r.areas {
		if existing.Name == area.Name {
			return fmt.Errorf("duplicate area")
		}
	}
	area.ID = r.nextID
	r.nextID++
	copied := *area
	r.areas[area.ID] = &copied
	return nil
}

func (r *fakeCatalogRepo) ListProfessionalAreas() ([]models.ProfessionalArea, error) {
	var all []models.ProfessionalArea
	for _, area := range r.areas {
		all = append(all, *area)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (r *fakeCatalogRepo) GetProfessionalAreaByID(id uint) (*models.ProfessionalArea, error) {
	if area, ok := r.areas[id]; ok {
		copied := *area
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCatalogRepo) CreateSkill(skill *models.Skill) error {
	skill.ID = r.nextID
	r.nextID++
	copied := *skill
	r.skills[skill.ID] = &copied
	return nil
}

func (r *fakeCatalogRepo) CreateSkills(skills []models.Skill) error {
	for i := range skills {
		if err := r.CreateSkill(&skills[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeCatalogRepo) ListSkillsByArea(areaID uint) ([]models.Skill, error) {
	var all []models.Skill
	for _, skill := range r.skills {
		if skill.ProfessionalAreaID == areaID {
			all = append(all, *skill)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (r *fakeCatalogRepo) GetSkillsByIDs(ids []uint) ([]models.Skill, error) {
	var all []models.Skill
	for _, id := range ids {
		if skill, ok := r.skills[id]; ok {
			all = append(all, *skill)
		}
	}
	return all, nil
}

type fakeProfileRepo struct {
	experiences  map[uint]*models.Experience
	educations   map[uint]*models.Education
	certificates map[uint]*models.Certificate
	nextID       uint
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		experiences:  make(map[uint]*models.Experience),
		educations:   make(map[uint]*models.Education),
		certificates: make(map[uint]*models.Certificate),
		nextID:       1,
	}
}

func (r *fakeProfileRepo) AddExperience(exp *models.Experience) error {
	exp.ID = r.nextID
	r.nextID++
	copied := *exp
	r.experiences[exp.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) UpdateExperience(userID, id uint, exp *models.Experience) error {
	stored, ok := r.experiences[id]
	if !ok || stored.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	copied := *exp
	copied.ID = id
	copied.UserID = userID
	r.experiences[id] = &copied
	return nil
}

func (r *fakeProfileRepo) DeleteExperience(userID, id uint) error {
	stored, ok := r.experiences[id]
	if !ok || stored.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.experiences, id)
	return nil
}

func (r *fakeProfileRepo) ListExperiences(userID uint) ([]models.Experience, error) {
	var all []models.Experience
	for _, exp := range r.experiences {
		if exp.UserID == userID {
			all = append(all, *exp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Current != all[j].Current {
			return all[i].Current
		}
		return all[i].ID > all[j].ID
	})
	return all, nil
}

func (r *fakeProfileRepo) AddEducation(edu *models.Education) error {
	edu.ID = r.nextID
	r.nextID++
	copied := *edu
	r.educations[edu.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) UpdateEducation(userID, id uint, edu *models.Education) error {
	stored, ok := r.educations[id]
	if !ok || stored.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	copied := *edu
	copied.ID = id
	copied.UserID = userID
	r.educations[id] = &copied
	return nil
}

func (r *fakeProfileRepo) DeleteEducation(userID, id uint) error {
	stored, ok := r.educations[id]
	if !ok || stored.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.educations, id)
	return nil
}

func (r *fakeProfileRepo) ListEducations(userID uint) ([]models.Education, error) {
	var all []models.Education
	for _, edu := range r.educations {
		if edu.UserID == userID {
			all = append(all, *edu)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return all, nil
}

func (r *fakeProfileRepo) AddCertificate(cert *models.Certificate) error {
	cert.ID = r.nextID
	r.nextID++
	copied := *cert
	r.certificates[cert.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) UpdateCertificate(userID, id uint, cert *models.Certificate) error {
	stored, ok := r.certificates[id]
	if !ok || stored.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	copied := *cert
	copied.ID = id
	copied.UserID = userID
	r.certificates[id] = &copied
	return nil
}

func (r *fakeProfileRepo) DeleteCertificate(userID, id uint) error {
	stored, ok := r.certificates[id]
	if !ok || stored.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(r.certificates, id)
	return nil
}

func (r *fakeProfileRepo) ListCertificates(userID uint) ([]models.Certificate, error) {
	var all []models.Certificate
	for _, cert := range r.certificates {
		if cert.UserID == userID {
			all = append(all, *cert)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].IssueYear != all[j].IssueYear {
			return all[i].IssueYear > all[j].IssueYear
		}
		if all[i].IssueMonth != all[j].IssueMonth {
			return all[i].IssueMonth > all[j].IssueMonth
		}
		return all[i].ID > all[j].ID
	})
	return all, nil
}

func (r *fakeProfileRepo) DeleteAllByUser(userID uint) error {
	for id, exp := range r.experiences {
		if exp.UserID == userID {
			delete(r.experiences, id)
		}
	}
	for id, edu := range r.educations {
		if edu.UserID == userID {
			delete(r.educations, id)
		}
	}
	for id, cert := range r.certificates {
		if cert.UserID == userID {
			delete(r.certificates, id)
		}
	}
	return nil
}

type sentMail struct {
	kind  string
	to    string
	token string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) SendConfirmation(to, name, token string) error {
	m.sent = append(m.sent, sentMail{"confirmation", to, token})
	return nil
}

func (m *fakeMailer) SendPasswordReset(to, name, token string) error {
	m.sent = append(m.sent, sentMail{"reset", to, token})
	return nil
}

func (m *fakeMailer) SendEmailChangeCode(to, name, code string) error {
	m.sent = append(m.sent, sentMail{"email-code", to, code})
	return nil
}

type fakeUploader struct {
	uploads int
	deleted []string
}

func (u *fakeUploader) Upload(_ context.Context, folder, _ string, _ io.Reader) (string, string, error) {
	u.uploads++
	objectName := fmt.Sprintf("%s/object-%d", folder, u.uploads)
	return "https://storage.example.com/" + objectName, objectName, nil
}

func (u *fakeUploader) Delete(_ context.Context, objectName string) error {
	u.deleted = append(u.deleted, objectName)
	return nil
}
